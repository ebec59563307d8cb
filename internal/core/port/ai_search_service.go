package port

import (
	"context"
	"listing-service/internal/core/domain"
)

// AISearchServicePort - внешний AI/RAG сервис поиска
type AISearchServicePort interface {
	Search(ctx context.Context, query string, authHeader string) (*domain.AISearchResult, error)
}
