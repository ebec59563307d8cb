package usecase

import (
	"context"
	"errors"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type GetListingByIDUseCase struct {
	source port.ListingSourcePort
}

func NewGetListingByIDUseCase(source port.ListingSourcePort) *GetListingByIDUseCase {
	return &GetListingByIDUseCase{source: source}
}

func (uc *GetListingByIDUseCase) Execute(ctx context.Context, id int) (*domain.Listing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetListingByID",
		"listing_id": id,
	})

	listing, err := uc.source.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			ucLogger.Info("Listing not found", nil)
		} else {
			ucLogger.Error("Listing source returned an error", err, nil)
		}
		return nil, err
	}

	return listing, nil
}
