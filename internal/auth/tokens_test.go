package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testUser() *User {
	return &User{
		ID:     "user-1",
		Email:  "planner@ariya.events",
		Name:   "Asha",
		Role:   RolePlanner,
		Status: StatusActive,
	}
}

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute, nil)

	pair, err := tm.Issue(testUser(), "sess-1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.EqualValues(t, 900, pair.ExpiresIn)

	claims, err := tm.Verify(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "sess-1", claims.SessionID)
	require.Equal(t, "planner@ariya.events", claims.Email)
	require.Equal(t, RolePlanner, claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 15*time.Minute, nil)
	verifier := NewTokenManager("secret-b", 15*time.Minute, nil)

	pair, err := issuer.Issue(testUser(), "sess-1")
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), pair.AccessToken)
	require.ErrorIs(t, err, errInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute, nil)

	pair, err := tm.Issue(testUser(), "sess-1")
	require.NoError(t, err)

	_, err = tm.Verify(context.Background(), pair.AccessToken)
	require.ErrorIs(t, err, errTokenExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute, nil)
	_, err := tm.Verify(context.Background(), "not.a.token")
	require.ErrorIs(t, err, errInvalidToken)
}

func TestVerifyConsultsRevocationList(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tm := NewTokenManager("test-secret", 15*time.Minute, client)
	ctx := context.Background()

	pair, err := tm.Issue(testUser(), "sess-1")
	require.NoError(t, err)

	_, err = tm.Verify(ctx, pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, tm.Revoke(ctx, "sess-1"))

	_, err = tm.Verify(ctx, pair.AccessToken)
	require.ErrorIs(t, err, errTokenExpired)

	// The list entry outlives the access token, then expires on its own.
	mr.FastForward(16 * time.Minute)
	_, err = tm.Verify(ctx, pair.AccessToken)
	require.NoError(t, err)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute, nil)
	a, err := tm.Issue(testUser(), "sess-1")
	require.NoError(t, err)
	b, err := tm.Issue(testUser(), "sess-2")
	require.NoError(t, err)
	require.NotEqual(t, a.RefreshToken, b.RefreshToken)
}
