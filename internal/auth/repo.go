package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariya-events/ariya/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	MarkEmailVerified(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	CreateSession(ctx context.Context, sess *Session) error
	FindSessionByRefreshToken(ctx context.Context, refreshToken string) (*Session, error)
	RevokeSession(ctx context.Context, id string, at time.Time) error
	RevokeUserSessions(ctx context.Context, userID string, at time.Time) error
}

// PGRepository implements Repository on PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const uniqueViolation = "23505"

// CreateUser inserts a new account. A duplicate email maps to Conflict.
func (r *PGRepository) CreateUser(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (id, email, name, password_hash, role, status, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash,
		string(user.Role), string(user.Status), user.EmailVerified,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return shared.Conflict("A user with this email already exists")
		}
		return err
	}
	return nil
}

// FindByEmail fetches a user by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, email, name, password_hash, role, status, email_verified, created_at, updated_at
		FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// FindByID fetches a user by id.
func (r *PGRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT id, email, name, password_hash, role, status, email_verified, created_at, updated_at
		FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PGRepository) scanUser(row pgx.Row) (*User, error) {
	var u User
	var role, status string
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &status, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("User not found")
		}
		return nil, err
	}
	u.Role = Role(role)
	u.Status = Status(status)
	return &u, nil
}

// MarkEmailVerified flips the verification flag.
func (r *PGRepository) MarkEmailVerified(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET email_verified = TRUE, updated_at = NOW() WHERE id = $1`, userID)
	return err
}

// UpdatePassword replaces the stored hash.
func (r *PGRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, userID, passwordHash)
	return err
}

// CreateSession persists a refresh-token grant.
func (r *PGRepository) CreateSession(ctx context.Context, sess *Session) error {
	const query = `
		INSERT INTO sessions (id, user_id, refresh_token, ip, user_agent, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		sess.ID, sess.UserID, sess.RefreshToken, sess.IP, sess.UserAgent, sess.ExpiresAt, sess.CreatedAt)
	return err
}

// FindSessionByRefreshToken returns the live session for a refresh token.
func (r *PGRepository) FindSessionByRefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	const query = `
		SELECT id, user_id, refresh_token, ip, user_agent, expires_at, created_at, revoked_at
		FROM sessions WHERE refresh_token = $1`
	var s Session
	err := r.pool.QueryRow(ctx, query, refreshToken).Scan(
		&s.ID, &s.UserID, &s.RefreshToken, &s.IP, &s.UserAgent, &s.ExpiresAt, &s.CreatedAt, &s.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("Session not found")
		}
		return nil, err
	}
	return &s, nil
}

// RevokeSession stamps a session as revoked.
func (r *PGRepository) RevokeSession(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sessions SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL`, id, at)
	return err
}

// RevokeUserSessions stamps every live session for a user as revoked.
func (r *PGRepository) RevokeUserSessions(ctx context.Context, userID string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sessions SET revoked_at = $2 WHERE user_id = $1 AND revoked_at IS NULL`, userID, at)
	return err
}

var _ Repository = (*PGRepository)(nil)
