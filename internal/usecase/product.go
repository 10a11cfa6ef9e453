package usecase

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/slug"
)

// maxSlugAttempts caps the suffix loop when a name collides repeatedly.
const maxSlugAttempts = 10

type ProductUsecase struct {
	repo repository.ProductRepository
}

func NewProductUsecase(repo repository.ProductRepository) *ProductUsecase {
	return &ProductUsecase{repo: repo}
}

type CreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	Category    string
	ImageURL    string
	Published   bool
}

// CreateProduct derives the slug from the name and retries with numeric
// suffixes ("oak-chair", "oak-chair-2", ...) until the insert succeeds.
func (u *ProductUsecase) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.Currency == "" {
		input.Currency = "USD"
	}

	base := slug.Make(input.Name)
	if base == "" {
		base = "product"
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := base
		if attempt > 1 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}

		created, err := u.repo.Create(ctx, &domain.Product{
			Slug:        candidate,
			Name:        input.Name,
			Description: input.Description,
			PriceCents:  input.PriceCents,
			Currency:    input.Currency,
			Category:    input.Category,
			ImageURL:    input.ImageURL,
			Published:   input.Published,
		})
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, domain.ErrSlugConflict) {
			return nil, fmt.Errorf("create product: %w", err)
		}
	}

	return nil, domain.ErrSlugConflict
}

type UpdateProductInput struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	Category    string
	ImageURL    string
	Published   bool
}

// UpdateProduct replaces the mutable fields. The slug is fixed at
// creation — renaming a product does not break its URL.
func (u *ProductUsecase) UpdateProduct(ctx context.Context, input UpdateProductInput) (*domain.Product, error) {
	updated, err := u.repo.Update(ctx, &domain.Product{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    input.Currency,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Published:   input.Published,
	})
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (u *ProductUsecase) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (u *ProductUsecase) GetBySlug(ctx context.Context, s string) (*domain.Product, error) {
	p, err := u.repo.GetBySlug(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

type ListProductsInput struct {
	Category           string
	Query              string
	IncludeUnpublished bool
	Cursor             string
	Limit              int
}

type ListProductsResult struct {
	Products   []*domain.Product
	NextCursor *string
}

func (u *ProductUsecase) ListProducts(ctx context.Context, input ListProductsInput) (*ListProductsResult, error) {
	limit := clampLimit(input.Limit)

	repoInput := repository.ListProductsInput{
		Category:           input.Category,
		Query:              input.Query,
		IncludeUnpublished: input.IncludeUnpublished,
		Limit:              limit + 1,
	}
	if input.Cursor != "" {
		t, id, err := decodeCursor(input.Cursor)
		if err != nil {
			return nil, fmt.Errorf("bad cursor: %w", err)
		}
		repoInput.CursorTime = t
		repoInput.CursorID = id
	}

	products, err := u.repo.List(ctx, repoInput)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	result := &ListProductsResult{Products: products}
	if len(products) > limit {
		result.Products = products[:limit]
		last := result.Products[limit-1]
		c := encodeCursor(last.CreatedAt, last.ID)
		result.NextCursor = &c
	}
	return result, nil
}
