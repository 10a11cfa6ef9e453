package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrSlugConflict         = errors.New("slug already taken")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrPostNotFound         = errors.New("post not found")
	// ErrBadCursor marks a malformed client-supplied pagination cursor,
	// as opposed to a storage failure. Handlers map it to a 400.
	ErrBadCursor = errors.New("bad cursor")
)

type Product struct {
	ID          string
	Slug        string
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	Category    string
	ImageURL    string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Announcement struct {
	ID        string
	Title     string
	Body      string
	StartsAt  time.Time
	EndsAt    *time.Time
	CreatedAt time.Time
}

// Post is a social-feed entry shown on the storefront.
type Post struct {
	ID        string
	Title     string
	Body      string
	ImageURL  string
	Published bool
	CreatedAt time.Time
}
