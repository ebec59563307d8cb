package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	msgInternalError    = "Internal server error"
	msgNotFound         = "Property not found"
	msgBodyRequired     = "Request body is required"
	msgInvalidBody      = "Invalid request body"
	msgQueryRequired    = "Query is required"
	msgAIUnavailable    = "AI search service unavailable"
	msgRouteNotFound    = "Route not found"
	msgMethodNotAllowed = "Method not allowed"

	maxBodyBytes = 1 << 20
)

// bodyValidator - проверка тела запроса по JSON-схеме контракта
type bodyValidator interface {
	Validate(contract string, body []byte) error
}

// WriteJSONError отправляет {"success": false, "error": message} с заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Success: false, Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// readJSONBody читает тело, проверяет его наличие и схему.
// При ошибке ответ уже отправлен и ok == false.
func readJSONBody(w http.ResponseWriter, r *http.Request, validator bodyValidator, contract string) (body []byte, ok bool) {
	if r.Body == nil {
		WriteJSONError(w, http.StatusBadRequest, msgBodyRequired)
		return nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		WriteJSONError(w, http.StatusBadRequest, msgInvalidBody)
		return nil, false
	}

	if len(bytes.TrimSpace(body)) == 0 {
		WriteJSONError(w, http.StatusBadRequest, msgBodyRequired)
		return nil, false
	}

	if validator != nil {
		if err := validator.Validate(contract, body); err != nil {
			WriteJSONError(w, http.StatusBadRequest, msgInvalidBody)
			return nil, false
		}
	}

	return body, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
