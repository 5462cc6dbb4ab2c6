package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jayzwillz/backend-movie-app/internal/config"
)

func TestConfigured(t *testing.T) {
	m := New(&config.Config{})
	assert.False(t, m.Configured())

	m = New(&config.Config{SMTPUser: "app@example.com", SMTPPassword: "secret"})
	assert.True(t, m.Configured())
}

func TestSendSkipsWhenUnconfigured(t *testing.T) {
	m := New(&config.Config{
		BaseURL:     "http://localhost:8080",
		FrontendURL: "http://localhost:5173",
	})

	// No SMTP credentials: send degrades to false without dialing
	assert.False(t, m.SendVerificationEmail(context.Background(), "user@example.com", "Alice", "tok"))
	assert.False(t, m.SendPasswordResetEmail(context.Background(), "user@example.com", "Alice", "tok"))
}

func TestVerificationTemplate(t *testing.T) {
	body, err := renderTemplate(verificationTemplate, emailData{
		Name:    "Alice",
		LinkURL: "http://localhost:8080/api/auth/verify-email?token=abc",
	})
	assert.NoError(t, err)
	assert.Contains(t, body, "Welcome to XZMovies, Alice!")
	assert.Contains(t, body, "verify-email?token=abc")
	assert.Contains(t, body, "expire in 24 hours")
}

func TestResetTemplate(t *testing.T) {
	body, err := renderTemplate(resetTemplate, emailData{
		Name:    "Bob",
		LinkURL: "http://localhost:5173/reset-password?token=xyz",
	})
	assert.NoError(t, err)
	assert.Contains(t, body, "Hello Bob")
	assert.Contains(t, body, "reset-password?token=xyz")
	assert.Contains(t, body, "expire in 1 hour")
	// Escaping must not mangle the URL
	assert.False(t, strings.Contains(body, "&amp;token"))
}
