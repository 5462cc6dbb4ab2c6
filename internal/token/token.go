package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/Jayzwillz/backend-movie-app/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claim type constants. Verification and reset tokens are single-purpose
// claims distinguished by the embedded type; a token of one type never
// validates as another.
const (
	TypeSession           = "session"
	TypeEmailVerification = "email-verification"
	TypePasswordReset     = "password-reset"
)

var (
	ErrTokenGeneration = errors.New("failed to generate token")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token expired")
	ErrWrongTokenType  = errors.New("token type mismatch")
)

// Provider generates and validates the signed, stateless claims used across
// the auth lifecycle: session tokens (JWT secret) and email
// verification/password reset tokens (email token secret).
type Provider struct {
	config *config.Config
}

func NewProvider(cfg *config.Config) *Provider {
	return &Provider{config: cfg}
}

func (p *Provider) sign(userID, tokenType, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    tokenType,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
		"iss":     p.config.BaseURL,
		"sub":     userID,
		"jti":     uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return signed, nil
}

func (p *Provider) validate(tokenString, tokenType, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	claimedType, _ := claims["type"].(string)
	if claimedType != tokenType {
		return "", ErrWrongTokenType
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// GenerateSessionToken issues the bearer credential for authenticated
// requests. Only the user id is trusted from it; role is re-fetched from the
// store on every request.
func (p *Provider) GenerateSessionToken(userID string) (string, error) {
	return p.sign(userID, TypeSession, p.config.JWTSecret, p.config.JWTExpiration)
}

// ValidateSessionToken returns the user id carried by a session token.
func (p *Provider) ValidateSessionToken(tokenString string) (string, error) {
	return p.validate(tokenString, TypeSession, p.config.JWTSecret)
}

// GenerateVerificationToken issues the emailed account-verification claim.
func (p *Provider) GenerateVerificationToken(userID string) (string, error) {
	return p.sign(userID, TypeEmailVerification, p.config.EmailTokenSecret, p.config.VerificationTokenTTL)
}

// ValidateVerificationToken returns the user id carried by a verification token.
func (p *Provider) ValidateVerificationToken(tokenString string) (string, error) {
	return p.validate(tokenString, TypeEmailVerification, p.config.EmailTokenSecret)
}

// GeneratePasswordResetToken issues the emailed password-reset claim. The
// caller also stores the token value on the user record, so a superseded
// token fails even while its signature is still valid.
func (p *Provider) GeneratePasswordResetToken(userID string) (string, error) {
	return p.sign(userID, TypePasswordReset, p.config.EmailTokenSecret, p.config.PasswordResetTokenTTL)
}

// ValidatePasswordResetToken returns the user id carried by a reset token.
func (p *Provider) ValidatePasswordResetToken(tokenString string) (string, error) {
	return p.validate(tokenString, TypePasswordReset, p.config.EmailTokenSecret)
}
