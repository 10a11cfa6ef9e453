package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/transport/http/handler"
	"storefront/internal/transport/http/middleware"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	requestCode func(ctx context.Context, email string) error
	verifyCode  func(ctx context.Context, email, code string) (*domain.Session, error)
	googleLogin func(ctx context.Context, rawToken string) (*domain.Session, error)
}

func (f *fakeAuthUsecase) RequestCode(ctx context.Context, email string) error {
	return f.requestCode(ctx, email)
}

func (f *fakeAuthUsecase) VerifyCode(ctx context.Context, email, code string) (*domain.Session, error) {
	return f.verifyCode(ctx, email, code)
}

func (f *fakeAuthUsecase) GoogleLogin(ctx context.Context, rawToken string) (*domain.Session, error) {
	return f.googleLogin(ctx, rawToken)
}

func newAuthEngine(uc *fakeAuthUsecase, cfg handler.AuthConfig) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewAuthHandler(uc, cfg, logger)

	r := gin.New()
	r.POST("/auth/request-otp", h.RequestOTP)
	r.POST("/auth/verify-otp", h.VerifyOTP)
	r.POST("/auth/google", h.GoogleLogin)
	return r
}

func bothChannels() handler.AuthConfig {
	return handler.AuthConfig{EmitCookie: true, EmitBody: true}
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	return nil
}

func testSession() *domain.Session {
	return &domain.Session{
		Token: "signed-jwt",
		User:  &domain.User{ID: "user-1", Email: "a@b.com", Role: domain.RoleUser},
	}
}

// ---- RequestOTP ----

func TestRequestOTP_InvalidJSON_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w := postJSON(t, newAuthEngine(uc, bothChannels()), "/auth/request-otp", `{bad json}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRequestOTP_InvalidEmail_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		requestCode: func(context.Context, string) error {
			t.Error("usecase must not be called for an invalid email")
			return nil
		},
	}
	w := postJSON(t, newAuthEngine(uc, bothChannels()), "/auth/request-otp", `{"email":"not-an-email"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRequestOTP_Success_Returns200(t *testing.T) {
	var got string
	uc := &fakeAuthUsecase{
		requestCode: func(_ context.Context, email string) error {
			got = email
			return nil
		},
	}
	w := postJSON(t, newAuthEngine(uc, bothChannels()), "/auth/request-otp", `{"email":"a@b.com"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got != "a@b.com" {
		t.Errorf("usecase called with %q, want a@b.com", got)
	}
}

func TestRequestOTP_DeliveryFailure_Returns500(t *testing.T) {
	uc := &fakeAuthUsecase{
		requestCode: func(context.Context, string) error {
			return domain.ErrDeliveryFailed
		},
	}
	w := postJSON(t, newAuthEngine(uc, bothChannels()), "/auth/request-otp", `{"email":"a@b.com"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Could not send the sign-in code") {
		t.Errorf("body %q does not name the delivery failure", w.Body.String())
	}
}

// ---- VerifyOTP ----

func TestVerifyOTP_MissingCode_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w := postJSON(t, newAuthEngine(uc, bothChannels()), "/auth/verify-otp", `{"email":"a@b.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestVerifyOTP_InvalidCode_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		verifyCode: func(context.Context, string, string) (*domain.Session, error) {
			return nil, domain.ErrCodeInvalid
		},
	}
	w := postJSON(t, newAuthEngine(uc, bothChannels()), "/auth/verify-otp", `{"email":"a@b.com","code":"000000"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if c := sessionCookie(w); c != nil {
		t.Error("cookie must not be set on a rejected code")
	}
}

func TestVerifyOTP_InternalError_Returns500(t *testing.T) {
	uc := &fakeAuthUsecase{
		verifyCode: func(context.Context, string, string) (*domain.Session, error) {
			return nil, errors.New("db down")
		},
	}
	w := postJSON(t, newAuthEngine(uc, bothChannels()), "/auth/verify-otp", `{"email":"a@b.com","code":"123456"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "db down") {
		t.Error("internal error detail leaked to the client")
	}
}

func TestVerifyOTP_Success_SetsCookieAndBody(t *testing.T) {
	uc := &fakeAuthUsecase{
		verifyCode: func(context.Context, string, string) (*domain.Session, error) {
			return testSession(), nil
		},
	}
	w := postJSON(t, newAuthEngine(uc, bothChannels()), "/auth/verify-otp", `{"email":"a@b.com","code":"123456"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		OK    bool   `json:"ok"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.OK || body.Token != "signed-jwt" {
		t.Errorf("body = %+v, want ok with token", body)
	}

	c := sessionCookie(w)
	if c == nil {
		t.Fatal("session cookie not set")
	}
	if c.Value != "signed-jwt" {
		t.Errorf("cookie value = %q, want signed-jwt", c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if c.Path != "/" {
		t.Errorf("cookie path = %q, want /", c.Path)
	}
	if c.MaxAge != 7*24*60*60 {
		t.Errorf("cookie max-age = %d, want 7 days", c.MaxAge)
	}
}

func TestVerifyOTP_CookieOnlyDeployment_OmitsBodyToken(t *testing.T) {
	uc := &fakeAuthUsecase{
		verifyCode: func(context.Context, string, string) (*domain.Session, error) {
			return testSession(), nil
		},
	}
	cfg := handler.AuthConfig{EmitCookie: true, EmitBody: false}
	w := postJSON(t, newAuthEngine(uc, cfg), "/auth/verify-otp", `{"email":"a@b.com","code":"123456"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.Contains(w.Body.String(), "signed-jwt") {
		t.Error("token leaked into body with EmitBody off")
	}
	if sessionCookie(w) == nil {
		t.Error("session cookie not set")
	}
}

func TestVerifyOTP_BodyOnlyDeployment_OmitsCookie(t *testing.T) {
	uc := &fakeAuthUsecase{
		verifyCode: func(context.Context, string, string) (*domain.Session, error) {
			return testSession(), nil
		},
	}
	cfg := handler.AuthConfig{EmitCookie: false, EmitBody: true}
	w := postJSON(t, newAuthEngine(uc, cfg), "/auth/verify-otp", `{"email":"a@b.com","code":"123456"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if sessionCookie(w) != nil {
		t.Error("cookie set with EmitCookie off")
	}
	if !strings.Contains(w.Body.String(), "signed-jwt") {
		t.Error("token missing from body")
	}
}

// ---- GoogleLogin ----

func TestGoogleLogin_MissingToken_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w := postJSON(t, newAuthEngine(uc, bothChannels()), "/auth/google", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGoogleLogin_InvalidToken_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		googleLogin: func(context.Context, string) (*domain.Session, error) {
			return nil, domain.ErrGoogleToken
		},
	}
	w := postJSON(t, newAuthEngine(uc, bothChannels()), "/auth/google", `{"idToken":"garbage"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGoogleLogin_Success_SetsCookieAndBody(t *testing.T) {
	uc := &fakeAuthUsecase{
		googleLogin: func(context.Context, string) (*domain.Session, error) {
			return testSession(), nil
		},
	}
	w := postJSON(t, newAuthEngine(uc, bothChannels()), "/auth/google", `{"idToken":"valid"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if sessionCookie(w) == nil {
		t.Error("session cookie not set")
	}
	if !strings.Contains(w.Body.String(), "signed-jwt") {
		t.Error("token missing from body")
	}
}
