package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Jayzwillz/backend-movie-app/internal/auth"
	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, login, Google sign-in, and the email
// verification and password reset flows.
type AuthHandler struct {
	authService *services.AuthService
	config      *config.Config
}

func NewAuthHandler(as *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: as,
		config:      cfg,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a local account and dispatches the verification email.
// A failed dispatch still reports 201; the client is told to use the resend
// option instead.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists with this email"})
		case errors.Is(err, services.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters long"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		}
		return
	}

	message := "User registered successfully. Please check your email to verify your account before logging in."
	if !result.EmailSent {
		message = "User registered successfully, but verification email failed to send. Please contact support or use the resend option."
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"user": gin.H{
			"id":         result.User.ID,
			"name":       result.User.Name,
			"email":      result.User.Email,
			"role":       result.User.Role,
			"isVerified": result.User.IsVerified,
			"createdAt":  result.User.CreatedAt,
		},
		"emailSent": result.EmailSent,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a local account. Unknown-email and wrong-password
// failures are indistinguishable; unverified accounts get a distinct
// response so the client can offer the resend flow.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		case errors.Is(err, services.ErrEmailNotVerified):
			c.JSON(http.StatusUnauthorized, gin.H{
				"message":           "Please verify your email before logging in. Check your inbox for the verification link.",
				"needsVerification": true,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":        result.User.ID,
			"name":      result.User.Name,
			"email":     result.User.Email,
			"role":      result.User.Role,
			"createdAt": result.User.CreatedAt,
		},
		"token": result.Token,
	})
}

type googleAuthRequest struct {
	Credential string `json:"credential"`
}

// GoogleAuth signs a user in with a Google ID token, creating or linking
// the account as needed.
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	var req googleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Credential == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Google credential is required"})
		return
	}

	result, err := h.authService.GoogleAuth(c.Request.Context(), req.Credential)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email not found in Google account"})
		case errors.Is(err, services.ErrInvalidGoogleToken):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Google token"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during Google authentication"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Google authentication successful",
		"user": gin.H{
			"id":           result.User.ID,
			"name":         result.User.Name,
			"email":        result.User.Email,
			"avatar":       result.User.AvatarURL,
			"role":         result.User.Role,
			"isGoogleUser": result.User.IsGoogleUser,
			"createdAt":    result.User.CreatedAt,
		},
		"token": result.Token,
	})
}

// VerifyEmail consumes a verification token from the emailed link and
// redirects to the frontend result page. Every failure redirects with a
// failure flag rather than reporting which check tripped; already-verified
// is the one distinguished case since it is harmless to disclose.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	redirect := func(query string) {
		c.Redirect(http.StatusFound, fmt.Sprintf("%s/email-verified?%s", h.config.FrontendURL, query))
	}

	tokenString := c.Query("token")
	if tokenString == "" {
		redirect("success=false&error=invalid_token")
		return
	}

	err := h.authService.VerifyEmail(c.Request.Context(), tokenString)
	switch {
	case err == nil:
		redirect("success=true")
	case errors.Is(err, services.ErrAlreadyVerified):
		redirect("success=false&error=already_verified")
	case errors.Is(err, services.ErrInvalidEmailToken), errors.Is(err, services.ErrUserNotFound):
		redirect("success=false&error=invalid_token")
	default:
		redirect("success=false&error=server_error")
	}
}

type emailRequest struct {
	Email string `json:"email"`
}

// ResendVerification reissues the verification email for an unverified
// local account.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	err := h.authService.ResendVerification(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, services.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is already verified"})
		case errors.Is(err, services.ErrGoogleAccount):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Google users do not need email verification"})
		case errors.Is(err, services.ErrEmailDispatchFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send verification email"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while resending verification email"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification email sent successfully"})
}

// ForgotPassword issues a reset token and emails it. Unknown emails get the
// same response as known ones so the endpoint cannot be used to probe for
// accounts.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	err := h.authService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGoogleAccount):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Google users cannot reset their password. Please use Google sign-in."})
		case errors.Is(err, services.ErrEmailDispatchFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send password reset email"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while processing password reset request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If an account with that email exists, a password reset link has been sent."})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword consumes a reset token and installs the new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token and new password are required"})
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters long"})
		case errors.Is(err, services.ErrInvalidResetToken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired reset token"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, services.ErrGoogleAccount):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Google users cannot reset their password. Please use Google sign-in."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while resetting password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully. You can now log in with your new password."})
}
