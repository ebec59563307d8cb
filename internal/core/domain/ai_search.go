package domain

// ScoredListing - объект с оценкой уверенности локальной заглушки AI-поиска
type ScoredListing struct {
	Listing
	AIConfidence float64 `json:"aiConfidence"`
}

// AIMatch - один результат внешнего AI-сервиса после нормализации.
// IDFromKey означает, что ID взят из ключа объекта results и заменяет id самого объявления.
type AIMatch struct {
	ID              string
	IDFromKey       bool
	Listing         map[string]interface{}
	SimilarityScore float64
	Reason          string
	MatchDetails    interface{}
}

// AISearchResult - общий результат AI-поиска.
// Заполнено либо Scored (заглушка), либо Matches (внешний сервис).
type AISearchResult struct {
	Query      string
	Keywords   []string
	Confidence float64
	Scored     []ScoredListing
	Matches    []AIMatch
	HasMore    bool
	External   bool
}

func (r *AISearchResult) Count() int {
	if r.External {
		return len(r.Matches)
	}
	return len(r.Scored)
}
