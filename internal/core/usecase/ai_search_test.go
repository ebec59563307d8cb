package usecase

import (
	"context"
	"errors"
	"testing"

	"listing-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubAISearchScoresMatches(t *testing.T) {
	result := StubAISearch(sampleListings(), "Miami beach", func() float64 { return 0.5 })

	assert.Equal(t, []string{"miami", "beach"}, result.Keywords)
	require.Len(t, result.Scored, 1)
	assert.Equal(t, 5, result.Scored[0].ID)
	assert.InDelta(t, 0.9, result.Scored[0].AIConfidence, 1e-9)
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
}

func TestStubAISearchFallsBackToFirstThree(t *testing.T) {
	result := StubAISearch(sampleListings(), "castle moat", func() float64 { return 0 })

	require.Len(t, result.Scored, 3)
	assert.ElementsMatch(t, []int{1, 2, 3}, []int{result.Scored[0].ID, result.Scored[1].ID, result.Scored[2].ID})
	for _, s := range result.Scored {
		assert.InDelta(t, 0.7, s.AIConfidence, 1e-9)
	}
}

func TestStubAISearchConfidenceRangesAndOrder(t *testing.T) {
	for i := 0; i < 50; i++ {
		matched := StubAISearch(sampleListings(), "sale", defaultRandom())
		require.Len(t, matched.Scored, 6)
		for j, s := range matched.Scored {
			assert.GreaterOrEqual(t, s.AIConfidence, 0.8)
			assert.Less(t, s.AIConfidence, 1.0)
			if j > 0 {
				assert.GreaterOrEqual(t, matched.Scored[j-1].AIConfidence, s.AIConfidence)
			}
		}
		assert.Equal(t, matched.Scored[0].AIConfidence, matched.Confidence)

		fallback := StubAISearch(sampleListings(), "zzz", defaultRandom())
		for _, s := range fallback.Scored {
			assert.GreaterOrEqual(t, s.AIConfidence, 0.7)
			assert.Less(t, s.AIConfidence, 1.0)
		}
	}
}

func TestStubAISearchEmptyFixture(t *testing.T) {
	result := StubAISearch(nil, "anything", func() float64 { return 0.3 })
	assert.Empty(t, result.Scored)
	assert.Equal(t, 0.8, result.Confidence)
}

func TestAISearchUseCaseUsesStubWithoutExternal(t *testing.T) {
	uc := NewAISearchUseCase(&stubSource{listings: sampleListings()}, nil)

	result, err := uc.Execute(context.Background(), "Seattle", "")
	require.NoError(t, err)
	assert.False(t, result.External)
	require.Equal(t, 1, result.Count())
	assert.Equal(t, 6, result.Scored[0].ID)
}

func TestAISearchUseCaseRejectsBlankQuery(t *testing.T) {
	uc := NewAISearchUseCase(&stubSource{listings: sampleListings()}, nil)

	_, err := uc.Execute(context.Background(), "   ", "")
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestAISearchUseCaseDelegatesToExternal(t *testing.T) {
	external := &stubAIService{result: &domain.AISearchResult{
		Query:    "pool",
		External: true,
		Matches:  []domain.AIMatch{{ID: "a", SimilarityScore: 0.91}},
	}}
	uc := NewAISearchUseCase(&stubSource{err: errSourceDown}, external)

	result, err := uc.Execute(context.Background(), "pool", "Bearer t")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count())
	assert.Equal(t, "pool", external.gotQuery)
	assert.Equal(t, "Bearer t", external.gotAuth)

	external.err = errors.New("timeout")
	_, err = uc.Execute(context.Background(), "pool", "")
	assert.ErrorIs(t, err, domain.ErrAIServiceUnavailable)
}

// defaultRandom - случайный источник по умолчанию
func defaultRandom() func() float64 {
	return NewAISearchUseCase(nil, nil).random
}
