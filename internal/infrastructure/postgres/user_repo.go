package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, google_id, role, created_at, updated_at FROM users WHERE email = $1`

	row := r.pool.QueryRow(ctx, query, email)
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, google_id, role, created_at, updated_at FROM users WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanUser(row)
}

// CreateWithProfile inserts the user and its empty profile in a single
// transaction. Either both rows exist afterwards or neither does.
func (r *UserRepository) CreateWithProfile(ctx context.Context, email string, role domain.Role, googleID *string) (*domain.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, google_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, email, google_id, role, created_at, updated_at`,
		email, googleID, role,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO profiles (user_id) VALUES ($1)`, u.ID,
	); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return u, nil
}

func (r *UserRepository) SetGoogleID(ctx context.Context, userID, googleID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET google_id = $2, updated_at = NOW() WHERE id = $1`,
		userID, googleID,
	)
	if err != nil {
		return fmt.Errorf("set google id: %w", err)
	}
	return nil
}

func (r *UserRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT user_id, name, address, phone, picture, updated_at FROM profiles WHERE user_id = $1`

	var p domain.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Name, &p.Address, &p.Phone, &p.Picture, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET name = $2, address = $3, phone = $4, picture = $5, updated_at = NOW()
		WHERE user_id = $1`,
		p.UserID, p.Name, p.Address, p.Phone, p.Picture,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListCustomers(ctx context.Context, input repository.ListCustomersInput) ([]*domain.Customer, error) {
	args := []any{}
	where := []string{"u.role <> 'admin'"}

	if input.Email != "" {
		args = append(args, input.Email)
		where = append(where, fmt.Sprintf("u.email = $%d", len(args)))
	}
	if input.CursorTime != nil {
		args = append(args, *input.CursorTime, input.CursorID)
		where = append(where, fmt.Sprintf("(u.created_at, u.id) < ($%d, $%d)", len(args)-1, len(args)))
	}
	args = append(args, input.Limit)

	query := fmt.Sprintf(`
		SELECT u.id, u.email, u.google_id, u.role, u.created_at, u.updated_at,
		       p.name, p.address, p.phone, p.picture, p.updated_at
		FROM users u
		JOIN profiles p ON p.user_id = u.id
		WHERE %s
		ORDER BY u.created_at DESC, u.id DESC
		LIMIT $%d`,
		strings.Join(where, " AND "), len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		var c domain.Customer
		err := rows.Scan(
			&c.User.ID, &c.User.Email, &c.User.GoogleID, &c.User.Role,
			&c.User.CreatedAt, &c.User.UpdatedAt,
			&c.Profile.Name, &c.Profile.Address, &c.Profile.Phone,
			&c.Profile.Picture, &c.Profile.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.Profile.UserID = c.User.ID
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.GoogleID, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
