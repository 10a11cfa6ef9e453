package postgres

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuoteRepository struct {
	pool *pgxpool.Pool
}

func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{pool: pool}
}

func (r *QuoteRepository) Create(ctx context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	query := `
		INSERT INTO quote_requests (name, email, phone, message, product_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, phone, message, product_id, created_at`

	row := r.pool.QueryRow(ctx, query, q.Name, q.Email, q.Phone, q.Message, q.ProductID)
	return scanQuote(row)
}

func (r *QuoteRepository) List(ctx context.Context, input repository.ListInput) ([]*domain.QuoteRequest, error) {
	args := []any{}
	where := "TRUE"

	if input.CursorTime != nil {
		args = append(args, *input.CursorTime, input.CursorID)
		where += fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, input.Limit)

	query := fmt.Sprintf(`
		SELECT id, name, email, phone, message, product_id, created_at
		FROM quote_requests
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d`, where, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quote requests: %w", err)
	}
	defer rows.Close()

	var quotes []*domain.QuoteRequest
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func scanQuote(row pgx.Row) (*domain.QuoteRequest, error) {
	var q domain.QuoteRequest
	err := row.Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.Message, &q.ProductID, &q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan quote request: %w", err)
	}
	return &q, nil
}
