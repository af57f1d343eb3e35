package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/ariya-events/ariya/internal/shared"
)

const (
	verifyTokenTTL = 24 * time.Hour
	resetTokenTTL  = time.Hour
)

// Mailer delivers transactional mail. The jobs package provides the
// queue-backed implementation.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
	SendPasswordResetEmail(ctx context.Context, to, token string) error
}

// SocialVerifier resolves a provider token to a verified identity. The
// concrete provider integrations live outside this module.
type SocialVerifier interface {
	Verify(ctx context.Context, provider, providerToken string) (email, name string, err error)
}

// AuthResult is returned by login, register, refresh and social login. The
// token fields sit flat in the payload next to the user object.
type AuthResult struct {
	User PublicUser `json:"user"`
	TokenPair
}

// Service implements the authentication flows behind the /auth endpoints.
type Service struct {
	logger     *slog.Logger
	repo       Repository
	tokens     *TokenManager
	redis      *redis.Client
	mailer     Mailer
	social     SocialVerifier
	refreshTTL time.Duration
}

// NewService constructs a Service. mailer and social may be nil when the
// corresponding flows are disabled.
func NewService(logger *slog.Logger, repo Repository, tokens *TokenManager, redisClient *redis.Client, mailer Mailer, social SocialVerifier, refreshTTL time.Duration) *Service {
	return &Service{
		logger:     logger,
		repo:       repo,
		tokens:     tokens,
		redis:      redisClient,
		mailer:     mailer,
		social:     social,
		refreshTTL: refreshTTL,
	}
}

// Register creates an account and issues a first token pair. A verification
// email is queued; registration does not wait for delivery.
func (s *Service) Register(ctx context.Context, email, name, password string, role Role, ip, ua string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.Internal(err)
	}
	now := time.Now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		token, err := s.stashToken(ctx, "verify:", user.ID, verifyTokenTTL)
		if err == nil {
			if err := s.mailer.SendVerificationEmail(ctx, user.Email, token); err != nil {
				s.logger.Warn("queue verification email", slog.Any("error", err))
			}
		}
	}

	return s.grant(ctx, user, ip, ua)
}

// Login authenticates email/password credentials. Every credential failure
// answers the same message so callers cannot probe for account existence.
func (s *Service) Login(ctx context.Context, email, password, ip, ua string) (*AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.Unauthenticated("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.securityLog("login failed", user.ID, ip)
		return nil, shared.Unauthenticated("Invalid email or password")
	}
	if user.Status != StatusActive {
		s.securityLog("login attempt on inactive account", user.ID, ip)
		return nil, shared.Forbidden("Account is suspended")
	}
	return s.grant(ctx, user, ip, ua)
}

// Refresh rotates a refresh token: the old session is revoked, a new one is
// created and a fresh pair issued.
func (s *Service) Refresh(ctx context.Context, refreshToken, ip, ua string) (*AuthResult, error) {
	sess, err := s.repo.FindSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, shared.Unauthenticated("Invalid or expired refresh token")
	}
	now := time.Now().UTC()
	if sess.RevokedAt != nil || now.After(sess.ExpiresAt) {
		s.securityLog("refresh with revoked or expired token", sess.UserID, ip)
		return nil, shared.Unauthenticated("Invalid or expired refresh token")
	}
	user, err := s.repo.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, shared.Unauthenticated("Invalid or expired refresh token")
	}
	if user.Status != StatusActive {
		s.securityLog("refresh on inactive account", user.ID, ip)
		return nil, shared.Forbidden("Account is suspended")
	}

	if err := s.repo.RevokeSession(ctx, sess.ID, now); err != nil {
		return nil, shared.Internal(err)
	}
	if err := s.tokens.Revoke(ctx, sess.ID); err != nil {
		s.logger.Warn("revocation list update", slog.Any("error", err))
	}
	return s.grant(ctx, user, ip, ua)
}

// Logout revokes the session behind a refresh token. Logging out an unknown
// token succeeds: the end state is the same.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	sess, err := s.repo.FindSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		if shared.KindOf(err) == shared.KindNotFound {
			return nil
		}
		return shared.Internal(err)
	}
	now := time.Now().UTC()
	if err := s.repo.RevokeSession(ctx, sess.ID, now); err != nil {
		return shared.Internal(err)
	}
	if err := s.tokens.Revoke(ctx, sess.ID); err != nil {
		s.logger.Warn("revocation list update", slog.Any("error", err))
	}
	return nil
}

// ResetMessage is returned by ForgotPassword regardless of whether the email
// exists.
const ResetMessage = "If an account with that email exists, a password reset link has been sent"

// ForgotPassword queues a reset email when the account exists. The caller
// always receives the same outcome.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}
	token, err := s.stashToken(ctx, "reset:", user.ID, resetTokenTTL)
	if err != nil {
		s.logger.Error("stash reset token", slog.Any("error", err))
		return nil
	}
	if s.mailer != nil {
		if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
			s.logger.Warn("queue reset email", slog.Any("error", err))
		}
	}
	return nil
}

// ResetPassword consumes a reset token, replaces the password and revokes
// every live session for the account.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.consumeToken(ctx, "reset:"+token)
	if err != nil {
		return shared.Unauthenticated("Invalid or expired reset token")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return shared.Internal(err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return shared.Internal(err)
	}
	if err := s.repo.RevokeUserSessions(ctx, userID, time.Now().UTC()); err != nil {
		s.logger.Warn("revoke sessions after reset", slog.Any("error", err))
	}
	s.securityLog("password reset", userID, "")
	return nil
}

// VerifyEmail consumes a verification token and marks the account verified.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.consumeToken(ctx, "verify:"+token)
	if err != nil {
		return shared.Unauthenticated("Invalid or expired verification token")
	}
	return s.repo.MarkEmailVerified(ctx, userID)
}

// SocialLogin verifies a provider token and signs the caller in, creating the
// account on first use.
func (s *Service) SocialLogin(ctx context.Context, provider, providerToken, ip, ua string) (*AuthResult, error) {
	if s.social == nil {
		return nil, shared.Unauthenticated("Social login is not enabled")
	}
	email, name, err := s.social.Verify(ctx, provider, providerToken)
	if err != nil {
		return nil, shared.Unauthenticated("Invalid social login credentials")
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if shared.KindOf(err) != shared.KindNotFound {
			return nil, shared.Internal(err)
		}
		now := time.Now().UTC()
		user = &User{
			ID:            uuid.NewString(),
			Email:         email,
			Name:          name,
			Role:          RolePlanner,
			Status:        StatusActive,
			EmailVerified: true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	}
	if user.Status != StatusActive {
		s.securityLog("social login on inactive account", user.ID, ip)
		return nil, shared.Forbidden("Account is suspended")
	}
	return s.grant(ctx, user, ip, ua)
}

func (s *Service) grant(ctx context.Context, user *User, ip, ua string) (*AuthResult, error) {
	sessionID := uuid.NewString()
	pair, err := s.tokens.Issue(user, sessionID)
	if err != nil {
		return nil, shared.Internal(err)
	}
	now := time.Now().UTC()
	sess := &Session{
		ID:           sessionID,
		UserID:       user.ID,
		RefreshToken: pair.RefreshToken,
		IP:           ip,
		UserAgent:    ua,
		ExpiresAt:    now.Add(s.refreshTTL),
		CreatedAt:    now,
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, shared.Internal(err)
	}
	return &AuthResult{User: user.Public(), TokenPair: pair}, nil
}

// stashToken stores a single-use token in Redis mapped to the user id.
func (s *Service) stashToken(ctx context.Context, prefix, userID string, ttl time.Duration) (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("auth: generate token: %w", err)
	}
	token := hex.EncodeToString(b)
	if s.redis == nil {
		return "", errors.New("auth: token store unavailable")
	}
	if err := s.redis.Set(ctx, prefix+token, userID, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) consumeToken(ctx context.Context, key string) (string, error) {
	if s.redis == nil {
		return "", errors.New("auth: token store unavailable")
	}
	userID, err := s.redis.GetDel(ctx, key).Result()
	if err != nil {
		return "", err
	}
	return userID, nil
}

// securityLog emits the structured entry required for security-sensitive
// failures. It never carries the email address.
func (s *Service) securityLog(event, userID, ip string) {
	if s.logger == nil {
		return
	}
	s.logger.Warn("security event",
		slog.String("event", event),
		slog.String("user_id", userID),
		slog.String("ip", ip),
	)
}
