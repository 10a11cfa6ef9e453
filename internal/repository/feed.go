package repository

import (
	"context"

	"storefront/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	ListPublished(ctx context.Context, input ListInput) ([]*domain.Post, error)
}
