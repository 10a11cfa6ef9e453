package googleid

import (
	"context"

	"storefront/internal/domain"

	"google.golang.org/api/idtoken"
)

// Claims is the subset of a verified ID-token payload the service uses.
type Claims struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

// GoogleVerifier validates ID tokens against Google's public keys,
// audience-restricted to this deployment's OAuth client ID.
type GoogleVerifier struct {
	audience string
}

func NewVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{audience: clientID}
}

// Verify checks signature, expiry and audience, and requires a verified
// email claim. Every failure collapses into domain.ErrGoogleToken so the
// handler can map it to a 400 without leaking verifier internals.
func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.audience)
	if err != nil {
		return nil, domain.ErrGoogleToken
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, domain.ErrGoogleToken
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, domain.ErrGoogleToken
	}

	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return &Claims{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}
