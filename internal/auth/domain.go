package auth

import "time"

// Role enumerates the account types on the platform.
type Role string

const (
	RolePlanner Role = "PLANNER"
	RoleVendor  Role = "VENDOR"
	RoleAdmin   Role = "ADMIN"
)

// Status enumerates account lifecycle states. Suspended and locked accounts
// are rejected at credential verification even with a valid token signature.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusLocked    Status = "LOCKED"
)

// User represents a platform account.
type User struct {
	ID            string
	Email         string
	Name          string
	PasswordHash  string
	Role          Role
	Status        Status
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Session records one refresh-token grant. Revocation is checked on every
// token verification.
type Session struct {
	ID           string
	UserID       string
	RefreshToken string
	IP           string
	UserAgent    string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	RevokedAt    *time.Time
}

// TokenPair is what login, register and refresh hand to the client.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// PublicUser is the client-facing projection of User.
type PublicUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

// Public strips server-side fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
	}
}
