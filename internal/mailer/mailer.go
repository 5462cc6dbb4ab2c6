// Package mailer sends transactional account emails over SMTP.
// Delivery is best-effort: callers receive a boolean rather than an
// error so registration and reset flows can degrade gracefully when
// no SMTP credentials are configured.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/url"

	"github.com/wneessen/go-mail"

	"github.com/Jayzwillz/backend-movie-app/internal/config"
)

// Mailer sends verification and password-reset emails.
type Mailer struct {
	config *config.Config
}

// New creates a Mailer from SMTP configuration.
func New(cfg *config.Config) *Mailer {
	return &Mailer{config: cfg}
}

// Configured reports whether SMTP credentials are present. When false,
// Send methods return false without attempting a connection.
func (m *Mailer) Configured() bool {
	return m.config.SMTPUser != "" && m.config.SMTPPassword != ""
}

// SendVerificationEmail dispatches the account-verification email.
// The link points at the backend verify endpoint, which redirects to
// the frontend with a status flag.
func (m *Mailer) SendVerificationEmail(ctx context.Context, email, name, token string) bool {
	verificationURL := fmt.Sprintf("%s/api/auth/verify-email?token=%s",
		m.config.BaseURL, url.QueryEscape(token))

	body, err := renderTemplate(verificationTemplate, emailData{
		Name:    name,
		LinkURL: verificationURL,
	})
	if err != nil {
		log.Printf("mailer: failed to render verification email: %v", err)
		return false
	}

	return m.send(ctx, email, "Verify Your XZMovies Account", body)
}

// SendPasswordResetEmail dispatches the password-reset email. The link
// points at the frontend reset page carrying the one-hour token.
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, name, token string) bool {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s",
		m.config.FrontendURL, url.QueryEscape(token))

	body, err := renderTemplate(resetTemplate, emailData{
		Name:    name,
		LinkURL: resetURL,
	})
	if err != nil {
		log.Printf("mailer: failed to render reset email: %v", err)
		return false
	}

	return m.send(ctx, email, "Reset Your XZMovies Password", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) bool {
	if !m.Configured() {
		log.Printf("mailer: email credentials not configured, skipping send to %s", to)
		return false
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.config.EmailName, m.config.EmailFrom); err != nil {
		log.Printf("mailer: invalid sender address: %v", err)
		return false
	}
	if err := msg.To(to); err != nil {
		log.Printf("mailer: invalid recipient address %q: %v", to, err)
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.config.SMTPHost,
		mail.WithPort(m.config.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.config.SMTPUser),
		mail.WithPassword(m.config.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		log.Printf("mailer: failed to create SMTP client: %v", err)
		return false
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Printf("mailer: failed to send email to %s: %v", to, err)
		return false
	}

	return true
}

type emailData struct {
	Name    string
	LinkURL string
}

func renderTemplate(tmpl *template.Template, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
