package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariya-events/ariya/internal/platform/httpx"
	"github.com/ariya-events/ariya/internal/ratelimit"
	"github.com/ariya-events/ariya/internal/validate"
)

// Handler wires the /auth HTTP endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	limiter *ratelimit.Store
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, limiter *ratelimit.Store) *Handler {
	return &Handler{logger: logger, service: service, limiter: limiter}
}

// MountRoutes registers auth routes. Credential endpoints sit behind the auth
// rate-limit category; token housekeeping uses the default category.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Limit(h.limiter, ratelimit.CategoryAuth))
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/forgot-password", h.handleForgotPassword)
		r.Post("/reset-password", h.handleResetPassword)
		r.Post("/social-login", h.handleSocialLogin)
	})
	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Limit(h.limiter, ratelimit.CategoryDefault))
		r.Post("/refresh-token", h.handleRefresh)
		r.Post("/logout", h.handleLogout)
		r.Post("/verify-email", h.handleVerifyEmail)
	})
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"omitempty,oneof=PLANNER VENDOR"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(h.logger, "auth.register", w, r, err)
		return
	}
	if err := validate.Schema(req); err != nil {
		httpx.RespondError(h.logger, "auth.register", w, r, err)
		return
	}
	role := Role(req.Role)
	if role == "" {
		role = RolePlanner
	}
	result, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password, role, r.RemoteAddr, r.UserAgent())
	if err != nil {
		httpx.RespondError(h.logger, "auth.register", w, r, err)
		return
	}
	httpx.Created(w, "Registration successful", result)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(h.logger, "auth.login", w, r, err)
		return
	}
	if err := validate.Schema(req); err != nil {
		httpx.RespondError(h.logger, "auth.login", w, r, err)
		return
	}
	result, err := h.service.Login(r.Context(), req.Email, req.Password, r.RemoteAddr, r.UserAgent())
	if err != nil {
		httpx.RespondError(h.logger, "auth.login", w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Login successful", result)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(h.logger, "auth.refresh", w, r, err)
		return
	}
	if err := validate.Schema(req); err != nil {
		httpx.RespondError(h.logger, "auth.refresh", w, r, err)
		return
	}
	result, err := h.service.Refresh(r.Context(), req.RefreshToken, r.RemoteAddr, r.UserAgent())
	if err != nil {
		httpx.RespondError(h.logger, "auth.refresh", w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Token refreshed", result)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(h.logger, "auth.logout", w, r, err)
		return
	}
	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		httpx.RespondError(h.logger, "auth.logout", w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Logged out", nil)
}

// forgotPasswordRules is the ad hoc rule-table variant; the endpoint has a
// single field and no struct worth declaring.
var forgotPasswordRules = validate.RuleSet{
	"email": {Required: true, Type: validate.TypeEmail},
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(h.logger, "auth.forgot", w, r, err)
		return
	}
	if res := validate.Check(payload, forgotPasswordRules); !res.Valid {
		httpx.Error(w, http.StatusBadRequest, "Validation failed", res.Errors)
		return
	}
	email, _ := payload["email"].(string)
	if err := h.service.ForgotPassword(r.Context(), email); err != nil {
		httpx.RespondError(h.logger, "auth.forgot", w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, ResetMessage, nil)
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(h.logger, "auth.reset", w, r, err)
		return
	}
	if err := validate.Schema(req); err != nil {
		httpx.RespondError(h.logger, "auth.reset", w, r, err)
		return
	}
	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		httpx.RespondError(h.logger, "auth.reset", w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Password has been reset", nil)
}

type verifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

func (h *Handler) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(h.logger, "auth.verify", w, r, err)
		return
	}
	if err := validate.Schema(req); err != nil {
		httpx.RespondError(h.logger, "auth.verify", w, r, err)
		return
	}
	if err := h.service.VerifyEmail(r.Context(), req.Token); err != nil {
		httpx.RespondError(h.logger, "auth.verify", w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Email verified", nil)
}

type socialLoginRequest struct {
	Provider string `json:"provider" validate:"required,oneof=google facebook apple"`
	Token    string `json:"token" validate:"required"`
}

func (h *Handler) handleSocialLogin(w http.ResponseWriter, r *http.Request) {
	var req socialLoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(h.logger, "auth.social", w, r, err)
		return
	}
	if err := validate.Schema(req); err != nil {
		httpx.RespondError(h.logger, "auth.social", w, r, err)
		return
	}
	result, err := h.service.SocialLogin(r.Context(), req.Provider, req.Token, r.RemoteAddr, r.UserAgent())
	if err != nil {
		httpx.RespondError(h.logger, "auth.social", w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Login successful", result)
}
