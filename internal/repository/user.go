package repository

import (
	"context"
	"time"

	"storefront/internal/domain"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// CreateWithProfile inserts the user and an empty profile in one
	// transaction so a user row never exists without its profile.
	CreateWithProfile(ctx context.Context, email string, role domain.Role, googleID *string) (*domain.User, error)
	SetGoogleID(ctx context.Context, userID, googleID string) error
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, p *domain.Profile) error
	ListCustomers(ctx context.Context, input ListCustomersInput) ([]*domain.Customer, error)
}

type ListCustomersInput struct {
	Email      string
	CursorTime *time.Time
	CursorID   string
	Limit      int
}
