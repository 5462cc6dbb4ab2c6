package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

var (
	ErrInvalidGoogleToken = errors.New("invalid google token")
	ErrMissingEmail       = errors.New("email not found in google account")
)

// GoogleProfile is the identity extracted from a verified Google ID token.
type GoogleProfile struct {
	GoogleID string // token subject
	Email    string
	Name     string
	Picture  string
}

// validateFunc matches idtoken.Validate; injectable for tests.
type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// GoogleVerifier checks Google ID-token credentials posted by the frontend
// sign-in flow: signature against Google's published certificates plus an
// audience match on our client id.
type GoogleVerifier struct {
	clientID string
	validate validateFunc
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

// Verify validates the credential and extracts the profile claims.
func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (*GoogleProfile, error) {
	payload, err := v.validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrMissingEmail
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return &GoogleProfile{
		GoogleID: payload.Subject,
		Email:    email,
		Name:     name,
		Picture:  picture,
	}, nil
}
