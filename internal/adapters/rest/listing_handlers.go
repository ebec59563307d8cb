package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type ListingHandler struct {
	searchUC  usecases_port.SearchListingsUseCase
	findUC    usecases_port.FindListingsUseCase
	getByIDUC usecases_port.GetListingByIDUseCase
	validator bodyValidator
}

func NewListingHandler(searchUC usecases_port.SearchListingsUseCase,
	findUC usecases_port.FindListingsUseCase,
	getByIDUC usecases_port.GetListingByIDUseCase,
	validator bodyValidator) *ListingHandler {
	return &ListingHandler{
		searchUC:  searchUC,
		findUC:    findUC,
		getByIDUC: getByIDUC,
		validator: validator,
	}
}

// Search обрабатывает POST /api/search
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Search"})

	body, ok := readJSONBody(w, r, h.validator, contracts.SearchRequestV1)
	if !ok {
		return
	}

	var req searchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Warn("Failed to decode search request", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	criteria := req.toCriteria()
	logger.Debug("Search request received", port.Fields{"criteria": criteria})

	result, err := h.searchUC.Execute(r.Context(), criteria)
	if err != nil {
		h.writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, newListingsResponse(result))
}

// ListProperties обрабатывает GET /api/properties
func (h *ListingHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProperties"})

	query := r.URL.Query()
	filter := domain.ListingsFilter{
		Location:  query.Get("location"),
		PriceMin:  query.Get("price_min"),
		PriceMax:  query.Get("price_max"),
		Bedrooms:  query.Get("bedrooms"),
		Bathrooms: query.Get("bathrooms"),
	}

	result, err := h.findUC.Execute(r.Context(), filter)
	if err != nil {
		h.writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, newListingsResponse(result))
}

// GetProperty обрабатывает GET /api/properties/{id}
func (h *ListingHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":    "GetProperty",
		"listing_id": idStr,
	})

	// нечисловой id не может совпасть ни с одним объявлением
	id, err := strconv.Atoi(idStr)
	if err != nil {
		logger.Debug("Non-numeric listing id", nil)
		WriteJSONError(w, http.StatusNotFound, msgNotFound)
		return
	}

	listing, err := h.getByIDUC.Execute(r.Context(), id)
	if err != nil {
		h.writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, ListingResponse{Success: true, Property: listing})
}

func (h *ListingHandler) writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		WriteJSONError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, domain.ErrInvalidCriteria):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, msgInternalError)
	}
}

// Health обрабатывает GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "OK", Message: "Dream Haven API is running!"})
}
