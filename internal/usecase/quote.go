package usecase

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"storefront/internal/domain"
	"storefront/internal/email"
	"storefront/internal/repository"
)

type QuoteUsecase struct {
	repo       repository.QuoteRepository
	email      email.Sender
	salesEmail string
	logger     *slog.Logger
}

func NewQuoteUsecase(repo repository.QuoteRepository, emailSender email.Sender, salesEmail string, logger *slog.Logger) *QuoteUsecase {
	return &QuoteUsecase{
		repo:       repo,
		email:      emailSender,
		salesEmail: salesEmail,
		logger:     logger.With("component", "quote_usecase"),
	}
}

type SubmitQuoteInput struct {
	Name      string
	Email     string
	Phone     string
	Message   string
	ProductID *string
}

// SubmitQuote persists the request, then notifies sales. The stored row
// is the source of truth — a failed notification is logged, not surfaced,
// and admins still see the request via the listing.
func (u *QuoteUsecase) SubmitQuote(ctx context.Context, input SubmitQuoteInput) (*domain.QuoteRequest, error) {
	created, err := u.repo.Create(ctx, &domain.QuoteRequest{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
		ProductID: input.ProductID,
	})
	if err != nil {
		return nil, fmt.Errorf("store quote request: %w", err)
	}

	subject := fmt.Sprintf("Quote request from %s", created.Name)
	body := fmt.Sprintf(
		`<p><strong>%s</strong> (%s, %s) asks:</p><blockquote>%s</blockquote>`,
		html.EscapeString(created.Name),
		html.EscapeString(created.Email),
		html.EscapeString(created.Phone),
		html.EscapeString(created.Message),
	)
	if err := u.email.Send(ctx, u.salesEmail, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "quote notification", "quote_id", created.ID, "error", err)
	}

	return created, nil
}

type ListQuotesResult struct {
	Quotes     []*domain.QuoteRequest
	NextCursor *string
}

func (u *QuoteUsecase) ListQuotes(ctx context.Context, cursor string, limit int) (*ListQuotesResult, error) {
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

	quotes, err := u.repo.List(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("list quote requests: %w", err)
	}

	result := &ListQuotesResult{Quotes: quotes}
	if len(quotes) > limit {
		result.Quotes = quotes[:limit]
		last := result.Quotes[limit-1]
		c := encodeCursor(last.CreatedAt, last.ID)
		result.NextCursor = &c
	}
	return result, nil
}
