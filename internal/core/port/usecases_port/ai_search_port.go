package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type AISearchUseCase interface {
	Execute(ctx context.Context, query string, authHeader string) (*domain.AISearchResult, error)
}
