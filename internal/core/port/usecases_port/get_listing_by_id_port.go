package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type GetListingByIDUseCase interface {
	Execute(ctx context.Context, id int) (*domain.Listing, error)
}
