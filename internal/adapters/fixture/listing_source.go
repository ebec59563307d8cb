package fixture

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
)

//go:embed data/listings.json
var defaultListings []byte

// schemaValidator - то, что нужно источнику от contracts.Validator
type schemaValidator interface {
	Validate(contract string, body []byte) error
}

// ListingSource - неизменяемый набор объявлений в памяти.
// Заполняется один раз при создании, дальше только читается, поэтому блокировки не нужны.
type ListingSource struct {
	listings []domain.Listing
	byID     map[int]int
}

// NewDefaultListingSource загружает встроенную фикстуру
func NewDefaultListingSource(validator schemaValidator) (*ListingSource, error) {
	return NewListingSourceFromJSON(defaultListings, validator)
}

// NewListingSourceFromFile загружает фикстуру из файла
func NewListingSourceFromFile(path string, validator schemaValidator) (*ListingSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings fixture %s: %w", path, err)
	}
	return NewListingSourceFromJSON(data, validator)
}

// NewListingSourceFromJSON проверяет документ по схеме (если validator != nil) и загружает его
func NewListingSourceFromJSON(data []byte, validator schemaValidator) (*ListingSource, error) {
	if validator != nil {
		if err := validator.Validate(contracts.ListingFixtureV1, data); err != nil {
			return nil, fmt.Errorf("listings fixture is invalid: %w", err)
		}
	}

	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings fixture: %w", err)
	}

	return NewListingSource(listings)
}

// NewListingSource создает источник из готового среза. Срез копируется.
func NewListingSource(listings []domain.Listing) (*ListingSource, error) {
	src := &ListingSource{
		listings: make([]domain.Listing, len(listings)),
		byID:     make(map[int]int, len(listings)),
	}
	copy(src.listings, listings)

	for i, l := range src.listings {
		if _, exists := src.byID[l.ID]; exists {
			return nil, fmt.Errorf("duplicate listing id %d in fixture", l.ID)
		}
		src.byID[l.ID] = i
	}

	return src, nil
}

// All возвращает копию всех объявлений в исходном порядке
func (s *ListingSource) All(ctx context.Context) ([]domain.Listing, error) {
	out := make([]domain.Listing, len(s.listings))
	copy(out, s.listings)
	return out, nil
}

func (s *ListingSource) ByID(ctx context.Context, id int) (*domain.Listing, error) {
	idx, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	listing := s.listings[idx]
	return &listing, nil
}

func (s *ListingSource) Len() int {
	return len(s.listings)
}
