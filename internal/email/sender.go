// Package email delivers reservation follow-ups to the sales team.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/config"
)

// Sender defines the interface for sending emails.
// The rawMessage parameter should contain the full email message, including headers and body, properly formatted.
type Sender interface {
	Send(ctx context.Context, to []string, subject string, rawMessage []byte) error
}

// SMTPSender implements the Sender interface using Go's net/smtp package.
type SMTPSender struct {
	cfg  *config.Config
	auth smtp.Auth
	addr string
}

// NewSMTPSender creates a new SMTPSender, or a LoggingSender when no SMTP host is configured.
func NewSMTPSender(cfg *config.Config) Sender {
	if cfg.SmtpHost == "" {
		slog.Info("SMTP host not configured, using logging email sender")
		return &LoggingSender{cfg: cfg}
	}

	auth := smtp.PlainAuth("", cfg.SmtpUsername, cfg.SmtpPassword, cfg.SmtpHost)
	return &SMTPSender{
		cfg:  cfg,
		auth: auth,
		addr: fmt.Sprintf("%s:%d", cfg.SmtpHost, cfg.SmtpPort),
	}
}

// Send sends an email using SMTP.
func (s *SMTPSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	if err := smtp.SendMail(s.addr, s.auth, s.cfg.SmtpFromAddress, to, rawMessage); err != nil {
		return fmt.Errorf("smtp error: %w", err)
	}
	slog.InfoContext(ctx, "Email sent via SMTP", "to", to, "subject", subject)
	return nil
}

// LoggingSender only logs email details.
type LoggingSender struct {
	cfg *config.Config
}

// Send logs the email instead of sending it.
func (s *LoggingSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	slog.InfoContext(ctx, "Email (logged, not sent)",
		"to", to,
		"from", s.cfg.SmtpFromAddress,
		"subject", subject,
		"raw", string(rawMessage))
	return nil
}
