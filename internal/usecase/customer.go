package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type CustomerUsecase struct {
	users repository.UserRepository
}

func NewCustomerUsecase(users repository.UserRepository) *CustomerUsecase {
	return &CustomerUsecase{users: users}
}

type ListCustomersInput struct {
	Email  string
	Cursor string
	Limit  int
}

type ListCustomersResult struct {
	Customers  []*domain.Customer
	NextCursor *string
}

func (u *CustomerUsecase) ListCustomers(ctx context.Context, input ListCustomersInput) (*ListCustomersResult, error) {
	limit := clampLimit(input.Limit)

	repoInput := repository.ListCustomersInput{
		Email: input.Email,
		Limit: limit + 1,
	}
	if input.Cursor != "" {
		t, id, err := decodeCursor(input.Cursor)
		if err != nil {
			return nil, fmt.Errorf("bad cursor: %w", err)
		}
		repoInput.CursorTime = t
		repoInput.CursorID = id
	}

	customers, err := u.users.ListCustomers(ctx, repoInput)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	result := &ListCustomersResult{Customers: customers}
	if len(customers) > limit {
		result.Customers = customers[:limit]
		last := result.Customers[limit-1]
		c := encodeCursor(last.User.CreatedAt, last.User.ID)
		result.NextCursor = &c
	}
	return result, nil
}

// ExportCSV streams every customer (no pagination) as CSV rows. Pages
// through the repo internally so memory stays bounded.
func (u *CustomerUsecase) ExportCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "email", "role", "name", "address", "phone", "created_at"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	input := repository.ListCustomersInput{Limit: maxPageLimit}
	for {
		customers, err := u.users.ListCustomers(ctx, input)
		if err != nil {
			return fmt.Errorf("export customers: %w", err)
		}
		for _, c := range customers {
			row := []string{
				c.User.ID,
				c.User.Email,
				string(c.User.Role),
				c.Profile.Name,
				c.Profile.Address,
				c.Profile.Phone,
				c.User.CreatedAt.Format(time.RFC3339),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
		if len(customers) < maxPageLimit {
			break
		}
		last := customers[len(customers)-1]
		t := last.User.CreatedAt
		input.CursorTime = &t
		input.CursorID = last.User.ID
	}

	cw.Flush()
	return cw.Error()
}

// GetProfile returns the authenticated user's record and profile.
func (u *CustomerUsecase) GetProfile(ctx context.Context, userID string) (*domain.Customer, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	profile, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &domain.Customer{User: *user, Profile: *profile}, nil
}

type UpdateProfileInput struct {
	UserID  string
	Name    string
	Address string
	Phone   string
	Picture string
}

func (u *CustomerUsecase) UpdateProfile(ctx context.Context, input UpdateProfileInput) error {
	err := u.users.UpdateProfile(ctx, &domain.Profile{
		UserID:  input.UserID,
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
		Picture: input.Picture,
	})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
