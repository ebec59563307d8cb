package usecase

import (
	"cmp"
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

const (
	// сколько объектов отдает заглушка, если ни одно ключевое слово не совпало
	fallbackCount = 3
	// значение aiAnalysis.confidence для пустой выдачи
	defaultConfidence = 0.8
)

// AISearchUseCase - AI-поиск. Если настроен внешний сервис, запрос уходит туда,
// иначе работает локальная заглушка StubAISearch.
type AISearchUseCase struct {
	source   port.ListingSourcePort
	external port.AISearchServicePort
	random   func() float64
}

// NewAISearchUseCase. external может быть nil - тогда используется заглушка.
func NewAISearchUseCase(source port.ListingSourcePort, external port.AISearchServicePort) *AISearchUseCase {
	return &AISearchUseCase{
		source:   source,
		external: external,
		random:   rand.Float64,
	}
}

func (uc *AISearchUseCase) Execute(ctx context.Context, query string, authHeader string) (*domain.AISearchResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "AISearch",
		"query":    query,
	})

	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	if uc.external != nil {
		result, err := uc.external.Search(ctx, query, authHeader)
		if err != nil {
			ucLogger.Error("External AI search failed", err, nil)
			return nil, fmt.Errorf("%w: %v", domain.ErrAIServiceUnavailable, err)
		}
		ucLogger.Info("External AI search finished", port.Fields{"total_found": result.Count(), "has_more": result.HasMore})
		return result, nil
	}

	listings, err := uc.source.All(ctx)
	if err != nil {
		ucLogger.Error("Listing source returned an error", err, nil)
		return nil, err
	}

	result := StubAISearch(listings, query, uc.random)
	ucLogger.Info("Stub AI search finished", port.Fields{"total_found": result.Count()})
	return result, nil
}

// StubAISearch - НЕ ранжирование по релевантности. Оценка уверенности случайная
// и пересчитывается при каждом вызове: совпавшие объекты получают [0.8, 1.0),
// при отсутствии совпадений возвращаются первые три объекта с оценкой [0.7, 1.0).
// random должен возвращать значения из [0, 1).
func StubAISearch(listings []domain.Listing, query string, random func() float64) *domain.AISearchResult {
	keywords := strings.Fields(strings.ToLower(query))

	var scored []domain.ScoredListing
	for _, l := range listings {
		text := strings.ToLower(l.Address + " " + l.Agent + " " + string(l.Type))
		if slices.ContainsFunc(keywords, func(k string) bool { return strings.Contains(text, k) }) {
			scored = append(scored, domain.ScoredListing{Listing: l, AIConfidence: random()*0.2 + 0.8})
		}
	}

	if len(scored) == 0 {
		n := min(fallbackCount, len(listings))
		scored = make([]domain.ScoredListing, 0, n)
		for _, l := range listings[:n] {
			scored = append(scored, domain.ScoredListing{Listing: l, AIConfidence: random()*0.3 + 0.7})
		}
	}

	slices.SortStableFunc(scored, func(a, b domain.ScoredListing) int {
		return cmp.Compare(b.AIConfidence, a.AIConfidence)
	})

	confidence := defaultConfidence
	if len(scored) > 0 {
		confidence = scored[0].AIConfidence
	}

	return &domain.AISearchResult{
		Query:      query,
		Keywords:   keywords,
		Confidence: confidence,
		Scored:     scored,
	}
}
