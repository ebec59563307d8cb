package token_adapter

import (
	"context"
	"testing"
	"time"

	"listing-service/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-signing-key"

func signToken(t *testing.T, key string, method jwt.SigningMethod, claims jwtCustomClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func validClaims(userID uuid.UUID) jwtCustomClaims {
	now := time.Now()
	return jwtCustomClaims{
		UserID: userID,
		Email:  "user@example.com",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    expectedIssuer,
		},
	}
}

func TestNewTokenValidatorRequiresKey(t *testing.T) {
	_, err := NewTokenValidator("")
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	v, err := NewTokenValidator(testKey)
	require.NoError(t, err)
	userID := uuid.New()

	claims, err := v.ValidateToken(context.Background(), signToken(t, testKey, jwt.SigningMethodHS256, validClaims(userID)))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateTokenRejects(t *testing.T) {
	v, err := NewTokenValidator(testKey)
	require.NoError(t, err)
	userID := uuid.New()

	expired := validClaims(userID)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	foreignIssuer := validClaims(userID)
	foreignIssuer.Issuer = "someone-else"

	cases := map[string]string{
		"garbage":        "not-a-token",
		"wrong key":      signToken(t, "other-key", jwt.SigningMethodHS256, validClaims(userID)),
		"wrong method":   signToken(t, testKey, jwt.SigningMethodHS512, validClaims(userID)),
		"expired":        signToken(t, testKey, jwt.SigningMethodHS256, expired),
		"foreign issuer": signToken(t, testKey, jwt.SigningMethodHS256, foreignIssuer),
		"no user id":     signToken(t, testKey, jwt.SigningMethodHS256, validClaims(uuid.Nil)),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.ValidateToken(context.Background(), token)
			assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}
