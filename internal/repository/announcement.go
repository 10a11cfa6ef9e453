package repository

import (
	"context"
	"time"

	"storefront/internal/domain"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	Delete(ctx context.Context, id string) error
	// ListActive returns announcements whose window contains now.
	ListActive(ctx context.Context, now time.Time, input ListInput) ([]*domain.Announcement, error)
}

// ListInput is the shared keyset-pagination input for simple listings.
type ListInput struct {
	CursorTime *time.Time
	CursorID   string
	Limit      int
}
