package usecase

import (
	"context"
	"errors"

	"listing-service/internal/core/domain"
)

// sampleListings повторяет встроенную фикстуру сервиса
func sampleListings() []domain.Listing {
	return []domain.Listing{
		{ID: 1, Address: "123 Dream Street, Beverly Hills, CA", Price: 2500000, Sqft: 3200, Bedrooms: 4, Bathrooms: 3, Type: domain.ListingTypeForSale, Agent: "Sarah Johnson"},
		{ID: 2, Address: "456 Luxury Lane, Los Angeles, CA", Price: 1800000, Sqft: 2800, Bedrooms: 3, Bathrooms: 2.5, Type: domain.ListingTypeForSale, Agent: "Mike Chen"},
		{ID: 3, Address: "789 Modern Ave, San Francisco, CA", Price: 3200000, Sqft: 3500, Bedrooms: 5, Bathrooms: 4, Type: domain.ListingTypeForSale, Agent: "Emily Davis"},
		{ID: 4, Address: "321 Downtown Blvd, New York, NY", Price: 4500000, Sqft: 4200, Bedrooms: 6, Bathrooms: 5, Type: domain.ListingTypeForSale, Agent: "David Wilson"},
		{ID: 5, Address: "654 Beach Road, Miami, FL", Price: 2800000, Sqft: 3800, Bedrooms: 4, Bathrooms: 3.5, Type: domain.ListingTypeForSale, Agent: "Lisa Rodriguez"},
		{ID: 6, Address: "987 Garden Court, Seattle, WA", Price: 1900000, Sqft: 2900, Bedrooms: 3, Bathrooms: 2, Type: domain.ListingTypeForSale, Agent: "Tom Anderson"},
	}
}

// mixedListings - фикстура с объявлениями обоих типов
func mixedListings() []domain.Listing {
	listings := sampleListings()
	listings[1].Type = domain.ListingTypeForRent
	listings[4].Type = domain.ListingTypeForRent
	return listings
}

func ids(listings []domain.Listing) []int {
	out := make([]int, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

type stubSource struct {
	listings []domain.Listing
	err      error
}

func (s *stubSource) All(ctx context.Context) ([]domain.Listing, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Listing, len(s.listings))
	copy(out, s.listings)
	return out, nil
}

func (s *stubSource) ByID(ctx context.Context, id int) (*domain.Listing, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, l := range s.listings {
		if l.ID == id {
			l := l
			return &l, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

type stubAIService struct {
	result   *domain.AISearchResult
	err      error
	gotQuery string
	gotAuth  string
}

func (s *stubAIService) Search(ctx context.Context, query string, authHeader string) (*domain.AISearchResult, error) {
	s.gotQuery, s.gotAuth = query, authHeader
	return s.result, s.err
}

var errSourceDown = errors.New("source down")
