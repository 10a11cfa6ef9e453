package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/usecase"
)

type fakeQuoteRepo struct {
	create func(ctx context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error)
	list   func(ctx context.Context, input repository.ListInput) ([]*domain.QuoteRequest, error)
}

func (r *fakeQuoteRepo) Create(ctx context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	return r.create(ctx, q)
}

func (r *fakeQuoteRepo) List(ctx context.Context, input repository.ListInput) ([]*domain.QuoteRequest, error) {
	return r.list(ctx, input)
}

func storedQuote(q *domain.QuoteRequest) *domain.QuoteRequest {
	stored := *q
	stored.ID = "quote-1"
	stored.CreatedAt = time.Now()
	return &stored
}

func quoteLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestSubmitQuote_StoresThenNotifiesSales(t *testing.T) {
	repo := &fakeQuoteRepo{
		create: func(_ context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error) {
			return storedQuote(q), nil
		},
	}
	sender := &fakeSender{}
	uc := usecase.NewQuoteUsecase(repo, sender, "sales@shop.test", quoteLogger())

	created, err := uc.SubmitQuote(context.Background(), usecase.SubmitQuoteInput{
		Name:    "Jane",
		Email:   "jane@example.com",
		Phone:   "555-0100",
		Message: "Need 40 chairs",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ID != "quote-1" {
		t.Errorf("id = %q, want quote-1", created.ID)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0], "Need 40 chairs") {
		t.Errorf("notification body missing the message: %q", sender.sent[0])
	}
}

func TestSubmitQuote_NotificationFailure_StillSucceeds(t *testing.T) {
	repo := &fakeQuoteRepo{
		create: func(_ context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error) {
			return storedQuote(q), nil
		},
	}
	sender := &fakeSender{sendErr: errors.New("smtp unavailable")}
	uc := usecase.NewQuoteUsecase(repo, sender, "sales@shop.test", quoteLogger())

	created, err := uc.SubmitQuote(context.Background(), usecase.SubmitQuoteInput{
		Name:  "Jane",
		Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("stored quote must succeed despite notification failure: %v", err)
	}
	if created == nil || created.ID == "" {
		t.Error("stored quote not returned")
	}
}

func TestSubmitQuote_StorageFailure_Errors(t *testing.T) {
	repo := &fakeQuoteRepo{
		create: func(context.Context, *domain.QuoteRequest) (*domain.QuoteRequest, error) {
			return nil, errors.New("db down")
		},
	}
	sender := &fakeSender{}
	uc := usecase.NewQuoteUsecase(repo, sender, "sales@shop.test", quoteLogger())

	if _, err := uc.SubmitQuote(context.Background(), usecase.SubmitQuoteInput{Name: "Jane"}); err == nil {
		t.Fatal("expected an error when storage fails")
	}
	if len(sender.sent) != 0 {
		t.Error("sales notified about a quote that was never stored")
	}
}

func TestSubmitQuote_EscapesHTMLInNotification(t *testing.T) {
	repo := &fakeQuoteRepo{
		create: func(_ context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error) {
			return storedQuote(q), nil
		},
	}
	sender := &fakeSender{}
	uc := usecase.NewQuoteUsecase(repo, sender, "sales@shop.test", quoteLogger())

	_, err := uc.SubmitQuote(context.Background(), usecase.SubmitQuoteInput{
		Name:    "Jane",
		Email:   "jane@example.com",
		Message: `<script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if strings.Contains(sender.sent[0], "<script>") {
		t.Error("notification body contains unescaped HTML")
	}
}
