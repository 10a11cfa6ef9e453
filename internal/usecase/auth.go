package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"storefront/internal/domain"
	"storefront/internal/email"
	"storefront/internal/googleid"
	"storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultCodeTTL    = 15 * time.Minute
	defaultSessionTTL = 7 * 24 * time.Hour

	// deterministicCode is what every request-otp issues when the
	// deterministic flag is on (local/staging only, enforced by config).
	deterministicCode = "123456"
)

type AuthUsecase struct {
	users  repository.UserRepository
	codes  repository.CodeRepository
	email  email.Sender
	google googleid.Verifier

	jwtKey        []byte
	deterministic bool
	codeTTL       time.Duration
	sessionTTL    time.Duration
}

func NewAuthUsecase(
	users repository.UserRepository,
	codes repository.CodeRepository,
	emailSender email.Sender,
	google googleid.Verifier,
	jwtKey []byte,
	deterministic bool,
) *AuthUsecase {
	return &AuthUsecase{
		users:         users,
		codes:         codes,
		email:         emailSender,
		google:        google,
		jwtKey:        jwtKey,
		deterministic: deterministic,
		codeTTL:       defaultCodeTTL,
		sessionTTL:    defaultSessionTTL,
	}
}

// RequestCode issues a fresh 6-digit code for the email, invalidating any
// code issued earlier, and mails it. The code is persisted before the
// email goes out and is NOT rolled back on delivery failure — the caller
// sees domain.ErrDeliveryFailed, requests again, and the next issuance
// supersedes this one anyway.
func (u *AuthUsecase) RequestCode(ctx context.Context, emailAddr string) error {
	code, err := u.generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	if err := u.codes.DeleteAllForEmail(ctx, emailAddr); err != nil {
		return fmt.Errorf("invalidate old codes: %w", err)
	}

	expiresAt := time.Now().Add(u.codeTTL)
	if err := u.codes.Create(ctx, emailAddr, code, expiresAt); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	subject := "Your sign-in code"
	body := fmt.Sprintf(
		`<p>Your one-time sign-in code is:</p><p><strong>%s</strong></p><p>It expires in 15 minutes.</p>`,
		code,
	)
	if err := u.email.Send(ctx, emailAddr, subject, body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// VerifyCode consumes a code exactly once and returns a session. Absent
// and expired codes are indistinguishable to the caller. A successful
// verification deletes every outstanding code for the email, not just
// the matched one.
func (u *AuthUsecase) VerifyCode(ctx context.Context, emailAddr, code string) (*domain.Session, error) {
	rec, err := u.codes.FindByEmailAndCode(ctx, emailAddr, code)
	if err != nil {
		if errors.Is(err, domain.ErrCodeInvalid) {
			return nil, domain.ErrCodeInvalid
		}
		return nil, fmt.Errorf("find code: %w", err)
	}
	if !rec.ExpiresAt.After(time.Now()) {
		return nil, domain.ErrCodeInvalid
	}

	if err := u.codes.DeleteAllForEmail(ctx, emailAddr); err != nil {
		return nil, fmt.Errorf("consume code: %w", err)
	}

	user, err := u.resolveUser(ctx, emailAddr, nil)
	if err != nil {
		return nil, err
	}
	return u.issueSession(user)
}

// GoogleLogin verifies a Google ID token and returns a session shaped
// exactly like VerifyCode's.
func (u *AuthUsecase) GoogleLogin(ctx context.Context, rawToken string) (*domain.Session, error) {
	claims, err := u.google.Verify(ctx, rawToken)
	if err != nil {
		return nil, domain.ErrGoogleToken
	}

	user, err := u.resolveUser(ctx, claims.Email, &claims.Subject)
	if err != nil {
		return nil, err
	}

	if user.GoogleID == nil {
		if err := u.users.SetGoogleID(ctx, user.ID, claims.Subject); err != nil {
			return nil, fmt.Errorf("link google id: %w", err)
		}
	}

	return u.issueSession(user)
}

// PurgeExpiredCodes deletes codes past their expiry. Run from cron;
// verification checks expiry itself, so this is hygiene, not correctness.
func (u *AuthUsecase) PurgeExpiredCodes(ctx context.Context) (int64, error) {
	return u.codes.DeleteExpired(ctx)
}

func (u *AuthUsecase) resolveUser(ctx context.Context, emailAddr string, googleID *string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	created, err := u.users.CreateWithProfile(ctx, emailAddr, domain.RoleUser, googleID)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (u *AuthUsecase) issueSession(user *domain.User) (*domain.Session, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(u.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return nil, fmt.Errorf("sign jwt: %w", err)
	}
	return &domain.Session{Token: signed, User: user}, nil
}

func (u *AuthUsecase) generateCode() (string, error) {
	if u.deterministic {
		return deterministicCode, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
