package usecase

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"listing-service/internal/core/domain"

	"golang.org/x/text/cases"
)

// predicate - один фильтр запроса. Все предикаты объединяются через AND.
type predicate func(l *domain.Listing) bool

// SearchListings применяет фильтры традиционного поиска и сортировку.
// Входной срез не изменяется, результат всегда новый срез.
func SearchListings(listings []domain.Listing, criteria domain.SearchCriteria, policy domain.NumericFilterPolicy) (*domain.SearchResult, error) {
	var preds []predicate

	if criteria.Location != "" {
		preds = append(preds, addressContains(criteria.Location))
	}

	if criteria.Type != "" && criteria.Type != domain.BothTypes {
		want := domain.ListingType(criteria.Type)
		preds = append(preds, func(l *domain.Listing) bool { return l.Type == want })
	}

	minBeds, ok, err := parseThreshold(criteria.MinBedrooms, "bed", true, policy)
	if err != nil {
		return nil, err
	}
	if ok {
		preds = append(preds, func(l *domain.Listing) bool { return float64(l.Bedrooms) >= minBeds })
	}

	minBaths, ok, err := parseThreshold(criteria.MinBathrooms, "bath", false, policy)
	if err != nil {
		return nil, err
	}
	if ok {
		preds = append(preds, func(l *domain.Listing) bool { return l.Bathrooms >= minBaths })
	}

	if criteria.FreeText != "" {
		needle := fold(criteria.FreeText)
		preds = append(preds, func(l *domain.Listing) bool {
			return strings.Contains(fold(l.Address), needle) || strings.Contains(fold(l.Agent), needle)
		})
	}

	filtered := filterListings(listings, preds)
	sortListings(filtered, criteria.SortBy, criteria.SortOrder)

	return &domain.SearchResult{Listings: filtered, Count: len(filtered)}, nil
}

// FindListings - вариант для GET /api/properties: подстрока адреса, диапазон цены,
// минимум спален и ванных.
func FindListings(listings []domain.Listing, filter domain.ListingsFilter, policy domain.NumericFilterPolicy) (*domain.SearchResult, error) {
	var preds []predicate

	if filter.Location != "" {
		preds = append(preds, addressContains(filter.Location))
	}

	priceMin, ok, err := parseThreshold(filter.PriceMin, "price_min", true, policy)
	if err != nil {
		return nil, err
	}
	if ok {
		preds = append(preds, func(l *domain.Listing) bool { return l.Price >= priceMin })
	}

	priceMax, ok, err := parseThreshold(filter.PriceMax, "price_max", true, policy)
	if err != nil {
		return nil, err
	}
	if ok {
		preds = append(preds, func(l *domain.Listing) bool { return l.Price <= priceMax })
	}

	minBeds, ok, err := parseThreshold(filter.Bedrooms, "bedrooms", true, policy)
	if err != nil {
		return nil, err
	}
	if ok {
		preds = append(preds, func(l *domain.Listing) bool { return float64(l.Bedrooms) >= minBeds })
	}

	minBaths, ok, err := parseThreshold(filter.Bathrooms, "bathrooms", false, policy)
	if err != nil {
		return nil, err
	}
	if ok {
		preds = append(preds, func(l *domain.Listing) bool { return l.Bathrooms >= minBaths })
	}

	filtered := filterListings(listings, preds)
	return &domain.SearchResult{Listings: filtered, Count: len(filtered)}, nil
}

func filterListings(listings []domain.Listing, preds []predicate) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
next:
	for i := range listings {
		for _, p := range preds {
			if !p(&listings[i]) {
				continue next
			}
		}
		out = append(out, listings[i])
	}
	return out
}

// sortListings сортирует на месте по числовому полю. Для нечисловых и неизвестных
// полей порядок не меняется. Сортировка стабильная.
func sortListings(listings []domain.Listing, sortBy, sortOrder string) {
	if sortBy == "" {
		return
	}
	if _, numeric := (domain.Listing{}).NumericField(sortBy); !numeric {
		return
	}

	desc := sortOrder == domain.SortDesc
	slices.SortStableFunc(listings, func(a, b domain.Listing) int {
		av, _ := a.NumericField(sortBy)
		bv, _ := b.NumericField(sortBy)
		if desc {
			return cmp.Compare(bv, av)
		}
		return cmp.Compare(av, bv)
	})
}

// parseThreshold разбирает значения вида "N+", "N" или "Any".
// ok == false означает, что фильтр не применяется.
// Для целочисленных фильтров дробное значение ("4.5+") считается некорректным, а не округляется.
func parseThreshold(raw, name string, integer bool, policy domain.NumericFilterPolicy) (value float64, ok bool, err error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == domain.AnyValue {
		return 0, false, nil
	}
	s = strings.TrimSuffix(s, "+")

	if integer {
		var n int
		n, err = strconv.Atoi(s)
		value = float64(n)
	} else {
		value, err = strconv.ParseFloat(s, 64)
		if err == nil && (math.IsNaN(value) || math.IsInf(value, 0)) {
			err = strconv.ErrSyntax
		}
	}
	if err != nil {
		if policy == domain.PolicyReject {
			return 0, false, fmt.Errorf("%w: %s filter %q is not a number", domain.ErrInvalidCriteria, name, raw)
		}
		return 0, false, nil
	}

	return value, true, nil
}

func addressContains(location string) predicate {
	needle := fold(location)
	return func(l *domain.Listing) bool {
		return strings.Contains(fold(l.Address), needle)
	}
}

// fold приводит строку к форме для регистронезависимого сравнения.
// cases.Caser хранит состояние, поэтому создается на каждый вызов.
func fold(s string) string {
	return cases.Fold().String(s)
}
