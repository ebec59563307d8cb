package rest

import "listing-service/internal/core/domain"

// searchRequest - тело POST /api/search в том виде, в котором его шлет фронтенд
type searchRequest struct {
	Location    *string `json:"location"`
	Rent        *string `json:"rent"`
	Bed         *string `json:"bed"`
	Bath        *string `json:"bath"`
	SearchQuery *string `json:"searchQuery"`
	SortBy      *string `json:"sortBy"`
	SortOrder   *string `json:"sortOrder"`
}

func (r searchRequest) toCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Location:     deref(r.Location),
		Type:         deref(r.Rent),
		MinBedrooms:  deref(r.Bed),
		MinBathrooms: deref(r.Bath),
		FreeText:     deref(r.SearchQuery),
		SortBy:       deref(r.SortBy),
		SortOrder:    deref(r.SortOrder),
	}
}

type aiSearchRequest struct {
	Query *string `json:"query"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ListingsResponse - общий конверт для списков объявлений
type ListingsResponse struct {
	Success    bool             `json:"success"`
	Count      int              `json:"count"`
	Properties []domain.Listing `json:"properties"`
}

type ListingResponse struct {
	Success  bool            `json:"success"`
	Property *domain.Listing `json:"property"`
}

type AIAnalysisResponse struct {
	Keywords   []string `json:"keywords"`
	Confidence float64  `json:"confidence"`
}

type AISearchResponse struct {
	Success    bool               `json:"success"`
	Query      string             `json:"query"`
	Count      int                `json:"count"`
	Properties interface{}        `json:"properties"`
	HasMore    *bool              `json:"hasMore,omitempty"`
	AIAnalysis AIAnalysisResponse `json:"aiAnalysis"`
}

func newListingsResponse(result *domain.SearchResult) ListingsResponse {
	properties := result.Listings
	if properties == nil {
		properties = []domain.Listing{}
	}
	return ListingsResponse{Success: true, Count: result.Count, Properties: properties}
}

func newAISearchResponse(result *domain.AISearchResult) AISearchResponse {
	keywords := result.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	resp := AISearchResponse{
		Success: true,
		Query:   result.Query,
		Count:   result.Count(),
		AIAnalysis: AIAnalysisResponse{
			Keywords:   keywords,
			Confidence: result.Confidence,
		},
	}

	if !result.External {
		scored := result.Scored
		if scored == nil {
			scored = []domain.ScoredListing{}
		}
		resp.Properties = scored
		return resp
	}

	hasMore := result.HasMore
	resp.HasMore = &hasMore
	resp.Properties = externalMatchesToProperties(result.Matches)
	return resp
}

// externalMatchesToProperties возвращает объявления внешнего сервиса как есть,
// добавляя поля оценки в единообразном виде.
func externalMatchesToProperties(matches []domain.AIMatch) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(matches))
	for _, m := range matches {
		property := make(map[string]interface{}, len(m.Listing)+5)
		for k, v := range m.Listing {
			property[k] = v
		}
		if _, exists := property["id"]; m.IDFromKey || (!exists && m.ID != "") {
			property["id"] = m.ID
		}
		property["similarity_score"] = m.SimilarityScore
		property["reason"] = m.Reason
		property["match_details"] = m.MatchDetails
		property["aiConfidence"] = m.SimilarityScore
		out = append(out, property)
	}
	return out
}
