package token_adapter

import (
	"context"
	"errors"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const expectedIssuer = "auth-service"

// TokenValidator проверяет HS256-токены, подписанные сервисом аутентификации.
// Токены сервис не выпускает, только читает.
type TokenValidator struct {
	signingKey []byte
}

func NewTokenValidator(signingKey string) (*TokenValidator, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	return &TokenValidator{signingKey: []byte(signingKey)}, nil
}

// jwtCustomClaims повторяет формат claims сервиса аутентификации
type jwtCustomClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

func (v *TokenValidator) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	validatorLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenValidator",
	})

	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.signingKey, nil
	}, jwt.WithIssuer(expectedIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			validatorLogger.Info("Token has expired", nil)
		} else {
			validatorLogger.Warn("Invalid token format or signature", port.Fields{"error": err.Error()})
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		validatorLogger.Warn("Token has no user id", nil)
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
