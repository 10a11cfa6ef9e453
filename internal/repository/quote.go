package repository

import (
	"context"

	"storefront/internal/domain"
)

type QuoteRepository interface {
	Create(ctx context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error)
	List(ctx context.Context, input ListInput) ([]*domain.QuoteRequest, error)
}
