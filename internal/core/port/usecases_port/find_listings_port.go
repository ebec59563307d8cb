package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type FindListingsUseCase interface {
	Execute(ctx context.Context, filter domain.ListingsFilter) (*domain.SearchResult, error)
}
