package token_test

import (
	"testing"
	"time"

	"talent-pool-backend/pkg/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func frozen(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateAndVerify(t *testing.T) {
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	m := token.NewManagerWithClock(testSecret, frozen(now))

	signed, err := m.Generate(42, "jane@example.com", "manager")
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "manager", claims.Role)
}

func TestVerifyRejections(t *testing.T) {
	issuedAt := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	issuer := token.NewManagerWithClock(testSecret, frozen(issuedAt))

	t.Run("garbage token", func(t *testing.T) {
		_, err := issuer.Verify("not-a-jwt")
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := token.NewManagerWithClock("another-secret", frozen(issuedAt))
		signed, err := other.Generate(1, "a@b.com", "candidate")
		require.NoError(t, err)

		_, err = issuer.Verify(signed)
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		signed, err := issuer.Generate(1, "a@b.com", "candidate")
		require.NoError(t, err)

		late := token.NewManagerWithClock(testSecret, frozen(issuedAt.Add(25*time.Hour)))
		_, err = late.Verify(signed)
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("age cap beats a generous exp", func(t *testing.T) {
		// Hand-crafted token with exp a week out but iat more than 24h ago.
		claims := jwt.MapClaims{
			"id":    int64(1),
			"email": "a@b.com",
			"role":  "candidate",
			"iat":   issuedAt.Unix(),
			"exp":   issuedAt.Add(7 * 24 * time.Hour).Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		within := token.NewManagerWithClock(testSecret, frozen(issuedAt.Add(23*time.Hour)))
		_, err = within.Verify(signed)
		assert.NoError(t, err)

		beyond := token.NewManagerWithClock(testSecret, frozen(issuedAt.Add(25*time.Hour)))
		_, err = beyond.Verify(signed)
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("missing iat", func(t *testing.T) {
		claims := jwt.MapClaims{
			"id":  int64(1),
			"exp": issuedAt.Add(time.Hour).Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = issuer.Verify(signed)
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		claims := jwt.MapClaims{
			"id":  int64(1),
			"iat": issuedAt.Unix(),
			"exp": issuedAt.Add(time.Hour).Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Verify(signed)
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})
}
