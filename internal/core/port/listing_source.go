package port

import (
	"context"
	"listing-service/internal/core/domain"
)

// ListingSourcePort - источник объявлений. Реализации обязаны возвращать копии,
// чтобы вызывающий код не мог изменить общие данные.
type ListingSourcePort interface {
	All(ctx context.Context) ([]domain.Listing, error)
	ByID(ctx context.Context, id int) (*domain.Listing, error)
}
