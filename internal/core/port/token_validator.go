package port

import (
	"context"
	"listing-service/internal/core/domain"
)

// TokenValidatorPort проверяет access-токен, выданный сервисом аутентификации
type TokenValidatorPort interface {
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}
