package repository

import (
	"context"
	"time"

	"storefront/internal/domain"
)

type ProductRepository interface {
	// Create returns domain.ErrSlugConflict when the slug is already taken.
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, input ListProductsInput) ([]*domain.Product, error)
}

type ListProductsInput struct {
	Category           string
	Query              string
	IncludeUnpublished bool
	CursorTime         *time.Time
	CursorID           string
	Limit              int
}
