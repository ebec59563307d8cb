package ai_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

const (
	searchPath    = "/ai-search"
	defaultLimit  = 20
	maxErrorBytes = 4 << 10
	// ответ больше этого считается ошибкой сервиса
	maxResponseBytes = 8 << 20
	// значение confidence, если сервис не вернул ни одного результата
	defaultConfidence = 0.8
)

// AIServiceAPIClient - клиент внешнего AI/RAG сервиса поиска.
type AIServiceAPIClient struct {
	baseURL          string // например, "http://localhost:8001"
	httpClient       *http.Client
	maxResponseBytes int64
}

func NewAIServiceAPIClient(baseURL string, timeout time.Duration) *AIServiceAPIClient {
	return &AIServiceAPIClient{
		baseURL:          strings.TrimRight(baseURL, "/"),
		httpClient:       &http.Client{Timeout: timeout},
		maxResponseBytes: maxResponseBytes,
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *AIServiceAPIClient) doRequest(ctx context.Context, method, url string, body io.Reader, authHeader string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set(contextkeys.TraceIDHeader, traceID)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// Search реализует port.AISearchServicePort.
func (c *AIServiceAPIClient) Search(ctx context.Context, query string, authHeader string) (*domain.AISearchResult, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "AIServiceAPIClient",
		"method":    "Search",
	})

	reqBody, err := json.Marshal(aiSearchRequest{Query: query, Page: 1, Limit: defaultLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(reqBody), authHeader)
	if err != nil {
		clientLogger.Error("Failed to perform request to ai service", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		err := fmt.Errorf("ai service returned non-200 status: %d, body: %s", resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received non-OK response from ai service", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	// читаем на байт больше лимита, чтобы отличить обрезанный ответ от ответа ровно по лимиту
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read ai service response: %w", err)
	}
	if int64(len(body)) > c.maxResponseBytes {
		err := fmt.Errorf("ai service response exceeds %d bytes", c.maxResponseBytes)
		clientLogger.Error("AI service response is too large", err, nil)
		return nil, err
	}

	normalized, err := NormalizeResponse(body)
	if err != nil {
		clientLogger.Error("Failed to normalize ai service response", err, nil)
		return nil, err
	}
	clientLogger.Debug("Received ai service response", port.Fields{
		"results_field": normalized.Source,
		"results_count": len(normalized.Matches),
		"has_more":      normalized.HasMore,
	})

	confidence := defaultConfidence
	for i, m := range normalized.Matches {
		if i == 0 || m.SimilarityScore > confidence {
			confidence = m.SimilarityScore
		}
	}

	return &domain.AISearchResult{
		Query:      query,
		Keywords:   strings.Fields(strings.ToLower(query)),
		Confidence: confidence,
		Matches:    normalized.Matches,
		HasMore:    normalized.HasMore,
		External:   true,
	}, nil
}
