package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	query := `
		INSERT INTO announcements (title, body, starts_at, ends_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, body, starts_at, ends_at, created_at`

	row := r.pool.QueryRow(ctx, query, a.Title, a.Body, a.StartsAt, a.EndsAt)
	return scanAnnouncement(row)
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepository) ListActive(ctx context.Context, now time.Time, input repository.ListInput) ([]*domain.Announcement, error) {
	args := []any{now}
	where := "starts_at <= $1 AND (ends_at IS NULL OR ends_at > $1)"

	if input.CursorTime != nil {
		args = append(args, *input.CursorTime, input.CursorID)
		where += fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, input.Limit)

	query := fmt.Sprintf(`
		SELECT id, title, body, starts_at, ends_at, created_at
		FROM announcements
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d`, where, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var items []*domain.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func scanAnnouncement(row pgx.Row) (*domain.Announcement, error) {
	var a domain.Announcement
	err := row.Scan(&a.ID, &a.Title, &a.Body, &a.StartsAt, &a.EndsAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("scan announcement: %w", err)
	}
	return &a, nil
}
