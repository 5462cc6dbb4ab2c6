package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jayzwillz/backend-movie-app/internal/auth"
	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/mailer"
	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
	"github.com/Jayzwillz/backend-movie-app/internal/token"
)

var (
	ErrEmailTaken          = errors.New("user already exists with this email")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrAlreadyVerified     = errors.New("email is already verified")
	ErrInvalidEmailToken   = errors.New("invalid or expired verification token")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
	ErrGoogleAccount       = errors.New("operation not available for Google accounts")
	ErrInvalidGoogleToken  = errors.New("invalid Google token")
	ErrWeakPassword        = errors.New("password must be at least 6 characters long")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailDispatchFailed = errors.New("failed to send email")
)

// RegisterResult reports the outcome of a registration, including
// whether the verification email was actually dispatched. A failed
// dispatch does not fail the registration.
type RegisterResult struct {
	User      *models.User
	EmailSent bool
}

// AuthResult carries an authenticated user plus their session token.
type AuthResult struct {
	User  *models.User
	Token string
}

// GoogleVerifier validates a Google ID token and returns the profile
// it carries. Satisfied by auth.GoogleVerifier.
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*auth.GoogleProfile, error)
}

// AuthService implements the account lifecycle: registration with
// email verification, local and Google login, and password reset.
type AuthService struct {
	store   *store.Store
	tokens  *token.Provider
	google  GoogleVerifier
	mailer  *mailer.Mailer
	metrics metrics.Recorder
	config  *config.Config
}

func NewAuthService(
	s *store.Store,
	tokens *token.Provider,
	google GoogleVerifier,
	m *mailer.Mailer,
	rec metrics.Recorder,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		store:   s,
		tokens:  tokens,
		google:  google,
		mailer:  m,
		metrics: rec,
		config:  cfg,
	}
}

// Register creates an unverified local account and dispatches the
// verification email. Registration succeeds even when the dispatch
// fails; EmailSent tells the caller to offer a resend action.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*RegisterResult, error) {
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	email = normalizeEmail(email)
	if _, err := s.store.GetUserByEmail(email); err == nil {
		s.metrics.RecordRegistration(false)
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrRecordNotFound) {
		s.metrics.RecordRegistration(false)
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.metrics.RecordRegistration(false)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}

	if err := s.store.CreateUser(user); err != nil {
		s.metrics.RecordRegistration(false)
		if errors.Is(err, store.ErrEmailConflict) {
			// Concurrent double-submit resolves to the same outcome as the pre-check
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.metrics.RecordRegistration(true)

	emailSent := s.dispatchVerification(ctx, user)

	return &RegisterResult{User: user, EmailSent: emailSent}, nil
}

// Login authenticates a local account and issues a session token.
// Unverified local accounts are rejected with ErrEmailNotVerified;
// Google accounts bypass verification gating but cannot log in with a
// password they do not have.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.store.GetUserByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			s.metrics.RecordLogin("local", false)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !user.HasPassword() {
		s.metrics.RecordLogin("local", false)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.RecordLogin("local", false)
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified && !user.IsGoogleUser {
		s.metrics.RecordLogin("local", false)
		return nil, ErrEmailNotVerified
	}

	sessionToken, err := s.tokens.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	s.metrics.RecordLogin("local", true)
	return &AuthResult{User: user, Token: sessionToken}, nil
}

// GoogleAuth verifies a Google ID token and logs the user in, linking
// or creating the account as needed. Accounts on the admin allow-list
// receive the admin role only at first creation; runtime checks never
// promote.
func (s *AuthService) GoogleAuth(ctx context.Context, credential string) (*AuthResult, error) {
	profile, err := s.google.Verify(ctx, credential)
	if err != nil {
		s.metrics.RecordLogin("google", false)
		if errors.Is(err, auth.ErrMissingEmail) {
			return nil, auth.ErrMissingEmail
		}
		return nil, ErrInvalidGoogleToken
	}

	email := normalizeEmail(profile.Email)
	user, err := s.store.GetUserByEmail(email)
	switch {
	case err == nil:
		// Link an existing local account in place
		if !user.IsGoogleUser {
			user.IsGoogleUser = true
			user.GoogleID = profile.GoogleID
			user.IsVerified = true
			if profile.Picture != "" {
				user.AvatarURL = profile.Picture
			}
			if err := s.store.UpdateUser(user); err != nil {
				return nil, fmt.Errorf("link google account: %w", err)
			}
		}
	case errors.Is(err, store.ErrRecordNotFound):
		user = &models.User{
			ID:           uuid.NewString(),
			Name:         profile.Name,
			Email:        email,
			AvatarURL:    profile.Picture,
			Role:         s.initialRole(email),
			IsVerified:   true,
			IsGoogleUser: true,
			GoogleID:     profile.GoogleID,
		}
		if err := s.store.CreateUser(user); err != nil {
			if errors.Is(err, store.ErrEmailConflict) {
				// Lost a race with a concurrent first login; re-read the winner
				if user, err = s.store.GetUserByEmail(email); err != nil {
					return nil, fmt.Errorf("reload user after conflict: %w", err)
				}
			} else {
				return nil, fmt.Errorf("create google user: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	sessionToken, err := s.tokens.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	s.metrics.RecordLogin("google", true)
	return &AuthResult{User: user, Token: sessionToken}, nil
}

// VerifyEmail consumes a verification token and marks the account
// verified. Already-verified accounts report ErrAlreadyVerified so the
// redirect can carry a distinct flag.
func (s *AuthService) VerifyEmail(ctx context.Context, tokenString string) error {
	userID, err := s.tokens.ValidateVerificationToken(tokenString)
	if err != nil {
		return ErrInvalidEmailToken
	}

	user, err := s.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	user.IsVerified = true
	if err := s.store.UpdateUser(user); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

// ResendVerification issues a fresh verification token and dispatches
// it. Unlike registration, a dispatch failure here is an error.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.store.GetUserByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}
	if user.IsGoogleUser {
		return ErrGoogleAccount
	}

	if !s.dispatchVerification(ctx, user) {
		return ErrEmailDispatchFailed
	}
	return nil
}

// ForgotPassword starts a password reset. The caller always receives
// the same generic outcome whether or not the account exists, except
// for Google accounts which are told to use Google sign-in.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.store.GetUserByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			// Do not reveal whether the account exists
			s.metrics.RecordPasswordReset("requested", true)
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if user.IsGoogleUser {
		return ErrGoogleAccount
	}

	resetToken, err := s.tokens.GeneratePasswordResetToken(user.ID)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	// Storing the token value makes each issuance single-use: a new
	// request overwrites and invalidates the previous token even
	// though its signature remains valid.
	expires := time.Now().Add(s.config.PasswordResetTokenTTL)
	user.PasswordResetToken = resetToken
	user.PasswordResetExpires = &expires
	if err := s.store.UpdateUser(user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	sent := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, resetToken)
	s.metrics.RecordEmailSent("password_reset", sent)
	if !sent {
		s.metrics.RecordPasswordReset("requested", false)
		return ErrEmailDispatchFailed
	}

	s.metrics.RecordPasswordReset("requested", true)
	return nil
}

// ResetPassword consumes a reset token. The token must carry a valid
// signature AND match the value stored on the user AND be unexpired.
func (s *AuthService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}

	userID, err := s.tokens.ValidatePasswordResetToken(tokenString)
	if err != nil {
		s.metrics.RecordPasswordReset("completed", false)
		return ErrInvalidResetToken
	}

	user, err := s.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if user.PasswordResetToken != tokenString ||
		user.PasswordResetExpires == nil ||
		user.PasswordResetExpires.Before(time.Now()) {
		s.metrics.RecordPasswordReset("completed", false)
		return ErrInvalidResetToken
	}

	if user.IsGoogleUser {
		return ErrGoogleAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	if err := s.store.UpdateUser(user); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}

	s.metrics.RecordPasswordReset("completed", true)
	return nil
}

func (s *AuthService) dispatchVerification(ctx context.Context, user *models.User) bool {
	verificationToken, err := s.tokens.GenerateVerificationToken(user.ID)
	if err != nil {
		log.Printf("[Auth] Failed to generate verification token for user=%s: %v", user.ID, err)
		s.metrics.RecordEmailSent("verification", false)
		return false
	}

	sent := s.mailer.SendVerificationEmail(ctx, user.Email, user.Name, verificationToken)
	s.metrics.RecordEmailSent("verification", sent)
	return sent
}

func (s *AuthService) initialRole(email string) string {
	for _, admin := range s.config.AdminEmails {
		if strings.EqualFold(admin, email) {
			return models.RoleAdmin
		}
	}
	return models.RoleUser
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
