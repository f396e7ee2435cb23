// Package providers wraps the external delivery providers behind single-send
// operations. Factories return nil when credentials are absent: a nil client
// is a configuration gap to skip, never a transient error to retry.
package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"ward26-notification-service/internal/config"
	"ward26-notification-service/internal/logging"
	"ward26-notification-service/internal/models"
)

// Messaging sends WhatsApp and SMS messages through the Twilio REST API.
type Messaging struct {
	client         *twilio.RestClient
	whatsappNumber string
	smsNumber      string
}

// NewMessaging builds the Twilio adapter, or nil when the account is not
// configured.
func NewMessaging(cfg config.Config, logger *logging.Logger) *Messaging {
	if cfg.Messaging.AccountSID == "" || cfg.Messaging.AuthToken == "" {
		logger.Infof("Twilio not configured - WhatsApp/SMS notifications disabled")
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.Messaging.AccountSID,
		Password: cfg.Messaging.AuthToken,
	})
	return &Messaging{
		client:         client,
		whatsappNumber: cfg.Messaging.WhatsAppNumber,
		smsNumber:      cfg.Messaging.SMSNumber,
	}
}

// WhatsAppConfigured reports whether a WhatsApp-capable sender number is set.
func (m *Messaging) WhatsAppConfigured() bool {
	return m.whatsappNumber != ""
}

// SMSConfigured reports whether a plain SMS sender number is set.
func (m *Messaging) SMSConfigured() bool {
	return m.smsNumber != ""
}

// SendWhatsApp delivers one WhatsApp message and returns the provider
// message SID.
func (m *Messaging) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	return m.send(ctx, "whatsapp:"+m.whatsappNumber, "whatsapp:"+to, body)
}

// SendSMS delivers one SMS and returns the provider message SID.
func (m *Messaging) SendSMS(ctx context.Context, to, body string) (string, error) {
	return m.send(ctx, m.smsNumber, to, body)
}

func (m *Messaging) send(ctx context.Context, from, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &twilioApi.CreateMessageParams{
		To:   &to,
		From: &from,
		Body: &body,
	}
	resp, err := m.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("failed to send message to %s: %w", to, err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// Classify maps a provider error to its delivery error kind. Rate/quota
// signals are Twilio error code 20429, HTTP 429, or a recognizable message
// substring.
func Classify(err error) models.ErrorKind {
	if err == nil {
		return ""
	}

	var restErr *twilioclient.TwilioRestError
	if errors.As(err, &restErr) {
		switch {
		case restErr.Code == 20429 || restErr.Status == 429:
			return models.ErrKindRateLimited
		case restErr.Code == 21211 || restErr.Code == 21614:
			// invalid or non-mobile 'To' number
			return models.ErrKindInvalidRecipient
		case restErr.Status >= 500:
			return models.ErrKindProviderUnavailable
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "exceeded") || strings.Contains(msg, "limit") || strings.Contains(msg, "quota") {
		return models.ErrKindRateLimited
	}
	return models.ErrKindUnknown
}
