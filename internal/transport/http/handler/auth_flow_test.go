package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/googleid"
	"storefront/internal/repository"
	"storefront/internal/transport/http/handler"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

// Minimal in-memory stores so the full OTP flow runs against the real
// usecase instead of a canned fake.

type flowCodeRepo struct {
	codes map[string]domain.OneTimeCode // keyed by email+code
}

func (r *flowCodeRepo) Create(_ context.Context, email, code string, expiresAt time.Time) error {
	r.codes[email+code] = domain.OneTimeCode{
		ID: fmt.Sprintf("code-%d", len(r.codes)+1), Email: email, Code: code, ExpiresAt: expiresAt,
	}
	return nil
}

func (r *flowCodeRepo) FindByEmailAndCode(_ context.Context, email, code string) (*domain.OneTimeCode, error) {
	c, ok := r.codes[email+code]
	if !ok {
		return nil, domain.ErrCodeInvalid
	}
	return &c, nil
}

func (r *flowCodeRepo) DeleteAllForEmail(_ context.Context, email string) error {
	for k, c := range r.codes {
		if c.Email == email {
			delete(r.codes, k)
		}
	}
	return nil
}

func (r *flowCodeRepo) DeleteExpired(context.Context) (int64, error) { return 0, nil }

type flowUserRepo struct {
	users map[string]*domain.User
}

func (r *flowUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *flowUserRepo) FindByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *flowUserRepo) CreateWithProfile(_ context.Context, email string, role domain.Role, googleID *string) (*domain.User, error) {
	u := &domain.User{ID: fmt.Sprintf("user-%d", len(r.users)+1), Email: email, GoogleID: googleID, Role: role}
	r.users[email] = u
	return u, nil
}

func (r *flowUserRepo) SetGoogleID(context.Context, string, string) error { return nil }

func (r *flowUserRepo) GetProfile(context.Context, string) (*domain.Profile, error) {
	return nil, domain.ErrUserNotFound
}

func (r *flowUserRepo) UpdateProfile(context.Context, *domain.Profile) error { return nil }

func (r *flowUserRepo) ListCustomers(context.Context, repository.ListCustomersInput) ([]*domain.Customer, error) {
	return nil, nil
}

type flowSender struct{}

func (flowSender) Send(context.Context, string, string, string) error { return nil }

type flowVerifier struct{}

func (flowVerifier) Verify(context.Context, string) (*googleid.Claims, error) {
	return nil, domain.ErrGoogleToken
}

// TestOTPFlow_DeterministicCode_EndToEnd drives request-otp then
// verify-otp through real handlers and a real usecase wired with the
// deterministic code generator, as a local deployment would be.
func TestOTPFlow_DeterministicCode_EndToEnd(t *testing.T) {
	uc := usecase.NewAuthUsecase(
		&flowUserRepo{users: map[string]*domain.User{}},
		&flowCodeRepo{codes: map[string]domain.OneTimeCode{}},
		flowSender{},
		flowVerifier{},
		[]byte("flow-test-secret-at-least-32-chars!"),
		true,
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewAuthHandler(uc, handler.AuthConfig{EmitCookie: true, EmitBody: true}, logger)

	r := gin.New()
	r.POST("/auth/request-otp", h.RequestOTP)
	r.POST("/auth/verify-otp", h.VerifyOTP)

	w := postJSON(t, r, "/auth/request-otp", `{"email":"a@b.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("request-otp status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/auth/verify-otp", `{"email":"a@b.com","code":"123456"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("verify-otp status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		OK    bool   `json:"ok"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.OK || body.Token == "" {
		t.Fatalf("body = %+v, want ok with a non-empty token", body)
	}
	if strings.Count(body.Token, ".") != 2 {
		t.Errorf("token %q does not look like a JWT", body.Token)
	}

	c := sessionCookie(w)
	if c == nil {
		t.Fatal("token cookie not set")
	}
	if c.Value != body.Token {
		t.Error("cookie token differs from body token")
	}

	// The code was consumed; replay must fail.
	w = postJSON(t, r, "/auth/verify-otp", `{"email":"a@b.com","code":"123456"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("replayed code status = %d, want 400", w.Code)
	}
}
