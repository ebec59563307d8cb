package usecase

import (
	"context"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type SearchListingsUseCase struct {
	source port.ListingSourcePort
	policy domain.NumericFilterPolicy
}

func NewSearchListingsUseCase(source port.ListingSourcePort, policy domain.NumericFilterPolicy) *SearchListingsUseCase {
	return &SearchListingsUseCase{source: source, policy: policy}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchListings",
		"criteria": criteria,
	})

	ucLogger.Debug("Use case started", nil)

	listings, err := uc.source.All(ctx)
	if err != nil {
		ucLogger.Error("Listing source returned an error", err, nil)
		return nil, err
	}

	result, err := SearchListings(listings, criteria, uc.policy)
	if err != nil {
		ucLogger.Warn("Search criteria rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": result.Count})
	return result, nil
}
