package usecase

import (
	"context"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type FindListingsUseCase struct {
	source port.ListingSourcePort
	policy domain.NumericFilterPolicy
}

func NewFindListingsUseCase(source port.ListingSourcePort, policy domain.NumericFilterPolicy) *FindListingsUseCase {
	return &FindListingsUseCase{source: source, policy: policy}
}

func (uc *FindListingsUseCase) Execute(ctx context.Context, filter domain.ListingsFilter) (*domain.SearchResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "FindListings",
		"filter":   filter,
	})

	listings, err := uc.source.All(ctx)
	if err != nil {
		ucLogger.Error("Listing source returned an error", err, nil)
		return nil, err
	}

	result, err := FindListings(listings, filter, uc.policy)
	if err != nil {
		ucLogger.Warn("Listings filter rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{"total_found": result.Count})
	return result, nil
}
