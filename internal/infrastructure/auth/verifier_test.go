package auth

import (
	"context"
	"testing"
	"time"

	"github.com/bizhub/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-token-verification!!"

func signToken(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func providerClaims(userID uuid.UUID, issuer string, expiresIn time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		Email: "user@example.com",
		Name:  "Test User",
	}
}

func TestTokenVerifier(t *testing.T) {
	verifier := NewTokenVerifier(config.AuthConfig{Secret: testSecret, Issuer: "bizhub-auth"})
	userID := uuid.New()

	t.Run("accepts a valid token", func(t *testing.T) {
		token := signToken(t, providerClaims(userID, "bizhub-auth", time.Hour), testSecret)

		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.Subject)
		assert.Equal(t, "user@example.com", claims.Email)

		parsed, err := claims.UserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("rejects wrong signature", func(t *testing.T) {
		token := signToken(t, providerClaims(userID, "bizhub-auth", time.Hour), "another-secret-entirely-wrong-here!!")
		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		token := signToken(t, providerClaims(userID, "bizhub-auth", -time.Minute), testSecret)
		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects wrong issuer", func(t *testing.T) {
		token := signToken(t, providerClaims(userID, "someone-else", time.Hour), testSecret)
		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, ErrWrongIssuer)
	})

	t.Run("rejects non-UUID subject", func(t *testing.T) {
		claims := providerClaims(userID, "bizhub-auth", time.Hour)
		claims.Subject = "not-a-uuid"
		token := signToken(t, claims, testSecret)

		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("rejects missing subject", func(t *testing.T) {
		claims := providerClaims(userID, "bizhub-auth", time.Hour)
		claims.Subject = ""
		token := signToken(t, claims, testSecret)

		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := verifier.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaimsRemainingTTL(t *testing.T) {
	claims := providerClaims(uuid.New(), "bizhub-auth", time.Hour)
	ttl := claims.RemainingTTL()
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	expired := providerClaims(uuid.New(), "bizhub-auth", -time.Hour)
	assert.Equal(t, time.Duration(0), expired.RemainingTTL())
}

func TestInMemoryTokenDenylist(t *testing.T) {
	ctx := context.Background()
	denylist := NewInMemoryTokenDenylist()

	t.Run("revoked JTI is reported", func(t *testing.T) {
		require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Hour))

		revoked, err := denylist.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = denylist.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("expired entries lapse", func(t *testing.T) {
		require.NoError(t, denylist.Revoke(ctx, "jti-short", -time.Second))

		revoked, err := denylist.IsRevoked(ctx, "jti-short")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("user cutoff rejects earlier tokens only", func(t *testing.T) {
		issuedBefore := time.Now().Add(-time.Minute)
		require.NoError(t, denylist.RevokeUserTokens(ctx, "user-1", time.Hour))
		issuedAfter := time.Now().Add(time.Minute)

		revoked, err := denylist.IsUserTokenRevoked(ctx, "user-1", issuedBefore)
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = denylist.IsUserTokenRevoked(ctx, "user-1", issuedAfter)
		require.NoError(t, err)
		assert.False(t, revoked)

		revoked, err = denylist.IsUserTokenRevoked(ctx, "user-2", issuedBefore)
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
