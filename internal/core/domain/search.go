package domain

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrInvalidCriteria = errors.New("invalid search criteria")
	ErrEmptyQuery      = errors.New("query is required")

	// ErrAIServiceUnavailable - внешний AI-сервис не ответил или ответил ошибкой
	ErrAIServiceUnavailable = errors.New("ai search service unavailable")
	ErrTokenInvalid         = errors.New("invalid jwt token")
)

// Значения фильтров, которые означают "не фильтровать"
const (
	AnyValue  = "Any"
	BothTypes = "Both"
	SortDesc  = "desc"
	SortAsc   = "asc"
)

// NumericFilterPolicy определяет, что делать с некорректным числовым фильтром ("abc+")
type NumericFilterPolicy int

const (
	// PolicyIgnore - фильтр отключается, как если бы пришло "Any"
	PolicyIgnore NumericFilterPolicy = iota
	// PolicyReject - запрос отклоняется с ErrInvalidCriteria
	PolicyReject
)

// SearchCriteria - фильтры традиционного поиска (POST /api/search).
// Пустые значения фильтр не включают.
type SearchCriteria struct {
	Location     string
	Type         string
	MinBedrooms  string
	MinBathrooms string
	FreeText     string
	SortBy       string
	SortOrder    string
}

// ListingsFilter - фильтры для GET /api/properties
type ListingsFilter struct {
	Location  string
	PriceMin  string
	PriceMax  string
	Bedrooms  string
	Bathrooms string
}

type SearchResult struct {
	Listings []Listing
	Count    int
}
