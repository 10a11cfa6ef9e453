package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CodeRepository struct {
	pool *pgxpool.Pool
}

func NewCodeRepository(pool *pgxpool.Pool) *CodeRepository {
	return &CodeRepository{pool: pool}
}

func (r *CodeRepository) Create(ctx context.Context, email, code string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO one_time_codes (email, code, expires_at) VALUES ($1, $2, $3)`,
		email, code, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert code: %w", err)
	}
	return nil
}

func (r *CodeRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*domain.OneTimeCode, error) {
	query := `
		SELECT id, email, code, expires_at, created_at
		FROM one_time_codes
		WHERE email = $1 AND code = $2`

	var c domain.OneTimeCode
	err := r.pool.QueryRow(ctx, query, email, code).Scan(
		&c.ID, &c.Email, &c.Code, &c.ExpiresAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCodeInvalid
		}
		return nil, fmt.Errorf("find code: %w", err)
	}
	return &c, nil
}

func (r *CodeRepository) DeleteAllForEmail(ctx context.Context, email string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM one_time_codes WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete codes: %w", err)
	}
	return nil
}

func (r *CodeRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM one_time_codes WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired codes: %w", err)
	}
	return tag.RowsAffected(), nil
}
