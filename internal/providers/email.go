package providers

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"

	"ward26-notification-service/internal/config"
	"ward26-notification-service/internal/logging"
)

// Email sends HTML notification mail over SMTP.
type Email struct {
	host     string
	port     int
	username string
	password string
}

// NewEmail builds the SMTP adapter, or nil when SMTP is not configured.
func NewEmail(cfg config.Config, logger *logging.Logger) *Email {
	e := cfg.Email
	if e.SMTPHost == "" || e.SMTPPort == 0 || e.Username == "" || e.Password == "" {
		logger.Infof("SMTP not configured - email notifications disabled")
		return nil
	}
	return &Email{
		host:     e.SMTPHost,
		port:     e.SMTPPort,
		username: e.Username,
		password: e.Password,
	}
}

// Send delivers one HTML message to the whole recipient list in a single
// SMTP call. SMTP has no provider message id, so a synthetic one is
// returned for the attempt record.
func (e *Email) Send(ctx context.Context, to []string, subject, htmlBody string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	joined := strings.Join(to, ",")
	msg := fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		joined, e.username, subject, htmlBody)

	auth := smtp.PlainAuth("", e.username, e.password, e.host)
	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	if err := smtp.SendMail(addr, auth, e.username, to, []byte(msg)); err != nil {
		return "", fmt.Errorf("failed to send email to %s: %w", joined, err)
	}
	return "smtp-" + uuid.NewString(), nil
}
