package repository

import (
	"context"
	"time"

	"storefront/internal/domain"
)

type CodeRepository interface {
	Create(ctx context.Context, email, code string, expiresAt time.Time) error
	FindByEmailAndCode(ctx context.Context, email, code string) (*domain.OneTimeCode, error)
	DeleteAllForEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
