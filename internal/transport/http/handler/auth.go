package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/transport/http/middleware"

	"github.com/gin-gonic/gin"
)

const cookieMaxAge = int(7 * 24 * time.Hour / time.Second)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*domain.Session, error)
	GoogleLogin(ctx context.Context, rawToken string) (*domain.Session, error)
}

// AuthConfig controls how a successful login hands the session token to
// the client. Both channels are on by default; a deployment can switch
// either off.
type AuthConfig struct {
	EmitCookie   bool
	EmitBody     bool
	SecureCookie bool
}

type AuthHandler struct {
	authUsecase authUsecaser
	cfg         AuthConfig
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, cfg AuthConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		cfg:         cfg,
		logger:      logger.With("component", "auth_handler"),
	}
}

type requestOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/request-otp
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.RequestCode(c.Request.Context(), req.Email); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "request otp", "error", err)
		if errors.Is(err, domain.ErrDeliveryFailed) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": errDeliveryFailed})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.CodesIssuedTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code"  binding:"required"`
}

// POST /auth/verify-otp
// Absent and expired codes produce the same 400 — no enumeration.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authUsecase.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrCodeInvalid) {
			metrics.LoginsTotal.WithLabelValues("otp", "rejected").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errCodeInvalid})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "verify otp", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.LoginsTotal.WithLabelValues("otp", "success").Inc()
	h.respondWithSession(c, session)
}

type googleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// POST /auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authUsecase.GoogleLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, domain.ErrGoogleToken) {
			metrics.LoginsTotal.WithLabelValues("google", "rejected").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errGoogleToken})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "google login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.LoginsTotal.WithLabelValues("google", "success").Inc()
	h.respondWithSession(c, session)
}

func (h *AuthHandler) respondWithSession(c *gin.Context, session *domain.Session) {
	if h.cfg.EmitCookie {
		c.SetCookie(middleware.CookieName, session.Token, cookieMaxAge, "/", "", h.cfg.SecureCookie, true)
	}

	resp := gin.H{"ok": true}
	if h.cfg.EmitBody {
		resp["token"] = session.Token
	}
	c.JSON(http.StatusOK, resp)
}
