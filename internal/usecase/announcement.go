package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type AnnouncementUsecase struct {
	repo repository.AnnouncementRepository
}

func NewAnnouncementUsecase(repo repository.AnnouncementRepository) *AnnouncementUsecase {
	return &AnnouncementUsecase{repo: repo}
}

type CreateAnnouncementInput struct {
	Title    string
	Body     string
	StartsAt *time.Time
	EndsAt   *time.Time
}

func (u *AnnouncementUsecase) CreateAnnouncement(ctx context.Context, input CreateAnnouncementInput) (*domain.Announcement, error) {
	startsAt := time.Now()
	if input.StartsAt != nil {
		startsAt = *input.StartsAt
	}

	created, err := u.repo.Create(ctx, &domain.Announcement{
		Title:    input.Title,
		Body:     input.Body,
		StartsAt: startsAt,
		EndsAt:   input.EndsAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return created, nil
}

func (u *AnnouncementUsecase) DeleteAnnouncement(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}

type ListAnnouncementsResult struct {
	Announcements []*domain.Announcement
	NextCursor    *string
}

// ListActive returns announcements currently within their display window.
func (u *AnnouncementUsecase) ListActive(ctx context.Context, cursor string, limit int) (*ListAnnouncementsResult, error) {
	limit = clampLimit(limit)

	input := repository.ListInput{Limit: limit + 1}
	if cursor != "" {
		t, id, err := decodeCursor(cursor)
		if err != nil {
			return nil, fmt.Errorf("bad cursor: %w", err)
		}
		input.CursorTime = t
		input.CursorID = id
	}

	items, err := u.repo.ListActive(ctx, time.Now(), input)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	result := &ListAnnouncementsResult{Announcements: items}
	if len(items) > limit {
		result.Announcements = items[:limit]
		last := result.Announcements[limit-1]
		c := encodeCursor(last.CreatedAt, last.ID)
		result.NextCursor = &c
	}
	return result, nil
}
