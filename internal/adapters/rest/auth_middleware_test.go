package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenValidator struct {
	valid string
}

func (f *fakeTokenValidator) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	if tokenString != f.valid {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.Claims{UserID: uuid.New(), Email: "user@example.com", Role: "user"}, nil
}

func aiSearchWithAuth(t *testing.T, h http.Handler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ai-search", strings.NewReader(`{"query":"pool"}`))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAISearchRequiresTokenWhenAuthEnabled(t *testing.T) {
	h := newTestServer(t, testServerOptions{
		authn: NewAuthMiddleware(&fakeTokenValidator{valid: "good"}),
	})

	for _, header := range []string{"", "good", "Bearer ", "Bearer bad", "Basic good"} {
		rec := aiSearchWithAuth(t, h, header)
		require.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, msgUnauthorized, decode[ErrorResponse](t, rec).Error)
	}
}

func TestAISearchForwardsValidToken(t *testing.T) {
	external := &fakeAIService{result: &domain.AISearchResult{Query: "pool", External: true, Confidence: 0.8}}
	h := newTestServer(t, testServerOptions{
		aiService: external,
		authn:     NewAuthMiddleware(&fakeTokenValidator{valid: "good"}),
	})

	rec := aiSearchWithAuth(t, h, "Bearer good")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer good", external.authHeader)
}

func TestAuthDoesNotGuardOtherRoutes(t *testing.T) {
	h := newTestServer(t, testServerOptions{
		authn: NewAuthMiddleware(&fakeTokenValidator{valid: "good"}),
	})

	rec := doRequest(t, h, http.MethodPost, "/api/search", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}
