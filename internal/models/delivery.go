package models

import (
	"math"
	"time"
)

// Channel tags one delivery mechanism.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
	ChannelEmail    Channel = "email"
)

// ErrorKind classifies a failed provider call.
type ErrorKind string

const (
	ErrKindRateLimited         ErrorKind = "rate_limited"
	ErrKindInvalidRecipient    ErrorKind = "invalid_recipient"
	ErrKindProviderUnavailable ErrorKind = "provider_unavailable"
	ErrKindUnknown             ErrorKind = "unknown"
)

// DeliveryAttempt records one provider call for one (channel, recipient)
// pair. Email sends go to the whole recipient list atomically, so a single
// attempt covers all addresses there.
type DeliveryAttempt struct {
	Timestamp time.Time `json:"timestamp"`
	Channel   Channel   `json:"channel"`
	Recipient string    `json:"recipient"`
	Success   bool      `json:"success"`
	MessageID string    `json:"message_id,omitempty"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// DeliveryReport aggregates every attempt made for one notification event.
// It is built fresh per invocation and only ever persisted as a trace entry
// in the delivery log.
type DeliveryReport struct {
	ComplaintID string            `json:"complaint_id"`
	Timestamp   time.Time         `json:"timestamp"`
	WhatsApp    bool              `json:"whatsapp"`
	SMS         bool              `json:"sms"`
	Email       bool              `json:"email"`
	Attempts    []DeliveryAttempt `json:"attempts"`
	SuccessRate int               `json:"success_rate"`
}

// Finalize derives the per-channel booleans and the success rate from the
// attempt list.
func (r *DeliveryReport) Finalize() {
	successes := 0
	for _, a := range r.Attempts {
		if !a.Success {
			continue
		}
		successes++
		switch a.Channel {
		case ChannelWhatsApp:
			r.WhatsApp = true
		case ChannelSMS:
			r.SMS = true
		case ChannelEmail:
			r.Email = true
		}
	}
	if len(r.Attempts) > 0 {
		r.SuccessRate = int(math.Round(float64(successes) / float64(len(r.Attempts)) * 100))
	}
}

// Delivered reports whether at least one channel got the message through.
func (r *DeliveryReport) Delivered() bool {
	return r.WhatsApp || r.SMS || r.Email
}
