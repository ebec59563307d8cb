package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type AISearchHandler struct {
	aiSearchUC usecases_port.AISearchUseCase
	validator  bodyValidator
}

func NewAISearchHandler(aiSearchUC usecases_port.AISearchUseCase, validator bodyValidator) *AISearchHandler {
	return &AISearchHandler{aiSearchUC: aiSearchUC, validator: validator}
}

// AISearch обрабатывает POST /api/ai-search
func (h *AISearchHandler) AISearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AISearch"})

	body, ok := readJSONBody(w, r, h.validator, contracts.AISearchRequestV1)
	if !ok {
		return
	}

	var req aiSearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	query := strings.TrimSpace(deref(req.Query))
	if query == "" {
		WriteJSONError(w, http.StatusBadRequest, msgQueryRequired)
		return
	}

	result, err := h.aiSearchUC.Execute(r.Context(), query, r.Header.Get("Authorization"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyQuery):
			WriteJSONError(w, http.StatusBadRequest, msgQueryRequired)
		case errors.Is(err, domain.ErrAIServiceUnavailable):
			logger.Warn("AI service unavailable", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusBadGateway, msgAIUnavailable)
		default:
			logger.Error("Use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, newAISearchResponse(result))
}
