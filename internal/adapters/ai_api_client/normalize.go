package ai_api_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"listing-service/internal/core/domain"
)

// NormalizedResponse - ответ AI-сервиса, приведенный к одной форме
type NormalizedResponse struct {
	Matches []domain.AIMatch
	HasMore bool
	// Source - из какого поля взяты результаты: "results", "items", "listings" или ""
	Source string
}

// NormalizeResponse приводит разные формы ответа AI-сервиса к списку AIMatch.
// Порядок приоритета:
//  1. "results" как объект {uuid: объявление} - id берется из ключа, порядок ключей сохраняется;
//  2. "results" как массив;
//  3. "items";
//  4. "listings".
//
// Поле с null считается отсутствующим. Если ни одного поля нет, результат пустой.
func NormalizeResponse(body []byte) (*NormalizedResponse, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("ai response is not a JSON object: %w", err)
	}

	out := &NormalizedResponse{Matches: []domain.AIMatch{}}
	if raw, ok := envelope["has_more"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &out.HasMore); err != nil {
			return nil, fmt.Errorf("invalid has_more: %w", err)
		}
	}

	for _, field := range []string{"results", "items", "listings"} {
		raw, ok := envelope[field]
		if !ok || isNull(raw) {
			continue
		}

		var (
			matches []domain.AIMatch
			err     error
		)
		if field == "results" && isObject(raw) {
			matches, err = matchesFromObject(raw)
		} else {
			matches, err = matchesFromArray(raw)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid %q in ai response: %w", field, err)
		}

		out.Matches = matches
		out.Source = field
		return out, nil
	}

	return out, nil
}

// matchesFromObject читает объект потоково: порядок ключей в ответе -
// это порядок релевантности, map его бы потерял.
func matchesFromObject(raw json.RawMessage) ([]domain.AIMatch, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	matches := make([]domain.AIMatch, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		var entry map[string]interface{}
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}

		m := matchFromEntry(entry)
		m.ID = key
		m.IDFromKey = true
		matches = append(matches, m)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return matches, nil
}

func matchesFromArray(raw json.RawMessage) ([]domain.AIMatch, error) {
	var entries []map[string]interface{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	matches := make([]domain.AIMatch, 0, len(entries))
	for _, e := range entries {
		matches = append(matches, matchFromEntry(e))
	}
	return matches, nil
}

func matchFromEntry(entry map[string]interface{}) domain.AIMatch {
	if entry == nil {
		entry = map[string]interface{}{}
	}
	m := domain.AIMatch{
		Listing:      entry,
		MatchDetails: entry["match_details"],
	}

	switch v := entry["id"].(type) {
	case string:
		m.ID = v
	case float64:
		m.ID = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v, ok := entry["similarity_score"].(float64); ok {
		m.SimilarityScore = v
	}
	if v, ok := entry["reason"].(string); ok {
		m.Reason = v
	}
	return m
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
