package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// Claims is what a verified access token resolves to.
type Claims struct {
	UserID    string
	SessionID string
	Email     string
	Role      Role
}

// TokenManager issues and verifies bearer credentials. Verification is
// independent of any web framework so the resolver is testable without a
// live server.
type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
	redis     *redis.Client
}

// NewTokenManager constructs a TokenManager. redis backs the session
// revocation list; a nil client disables revocation checks (tests only).
func NewTokenManager(secret string, accessTTL time.Duration, redisClient *redis.Client) *TokenManager {
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, redis: redisClient}
}

// AccessTTL exposes the configured access-token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration { return tm.accessTTL }

// Issue signs an access token bound to the user and session, plus an opaque
// refresh token.
func (tm *TokenManager) Issue(user *User, sessionID string) (TokenPair, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"sid":   sessionID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(tm.accessTTL).Unix(),
	})
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth: sign access token: %w", err)
	}
	refresh, err := opaqueToken()
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  signed,
		RefreshToken: refresh,
		ExpiresIn:    int64(tm.accessTTL.Seconds()),
	}, nil
}

// Verify checks signature and expiry, then consults the revocation list so a
// structurally valid token for a revoked session still fails.
func (tm *TokenManager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, errInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errInvalidToken
	}

	userID, _ := claims["sub"].(string)
	sessionID, _ := claims["sid"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || sessionID == "" {
		return nil, errInvalidToken
	}

	if tm.redis != nil {
		revoked, err := tm.redis.Exists(ctx, revocationKey(sessionID)).Result()
		if err != nil {
			return nil, fmt.Errorf("auth: revocation check: %w", err)
		}
		if revoked > 0 {
			return nil, errTokenExpired
		}
	}

	return &Claims{UserID: userID, SessionID: sessionID, Email: email, Role: Role(role)}, nil
}

// Revoke places a session on the revocation list for at least the access
// token lifetime, closing the window where a live access token outlasts its
// session.
func (tm *TokenManager) Revoke(ctx context.Context, sessionID string) error {
	if tm.redis == nil {
		return nil
	}
	return tm.redis.Set(ctx, revocationKey(sessionID), "1", tm.accessTTL+time.Minute).Err()
}

var (
	errInvalidToken = errors.New("invalid token")
	errTokenExpired = errors.New("token expired")
)

func revocationKey(sessionID string) string {
	return "revoked:session:" + sessionID
}

func opaqueToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("auth: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
