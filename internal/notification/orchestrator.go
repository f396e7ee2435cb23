package notification

import (
	"context"
	"strings"
	"sync"
	"time"

	"ward26-notification-service/internal/backoff"
	"ward26-notification-service/internal/format"
	"ward26-notification-service/internal/metrics"
	"ward26-notification-service/internal/models"
	"ward26-notification-service/internal/providers"
)

// reportBuilder collects attempts from the concurrently running channel
// tracks.
type reportBuilder struct {
	mu     sync.Mutex
	report models.DeliveryReport
}

func newReportBuilder(complaintID string) *reportBuilder {
	return &reportBuilder{report: models.DeliveryReport{
		ComplaintID: complaintID,
		Timestamp:   time.Now(),
	}}
}

func (b *reportBuilder) add(a models.DeliveryAttempt) {
	metrics.RecordAttempt(a)
	b.mu.Lock()
	b.report.Attempts = append(b.report.Attempts, a)
	b.mu.Unlock()
}

func (b *reportBuilder) finalize() *models.DeliveryReport {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := b.report
	r.Finalize()
	return &r
}

func attempt(ch models.Channel, recipient, messageID string, err error, kind models.ErrorKind) models.DeliveryAttempt {
	a := models.DeliveryAttempt{
		Timestamp: time.Now(),
		Channel:   ch,
		Recipient: recipient,
	}
	if err == nil {
		a.Success = true
		a.MessageID = messageID
	} else {
		a.ErrorKind = kind
		a.Error = err.Error()
	}
	return a
}

// NotifyAdmins delivers a new-complaint notification to the configured
// administrators. WhatsApp is attempted per recipient with SMS fallback; the
// email track runs independently. The returned report is also appended to
// the delivery log. Never returns an error: failed channels show up as false
// booleans.
func (s *Service) NotifyAdmins(ctx context.Context, p models.ProblemNotice) *models.DeliveryReport {
	start := time.Now()
	b := newReportBuilder(p.ComplaintID)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.sendAdminEmail(ctx, p, b)
	}()

	s.sendAdminMessages(ctx, p, b)
	wg.Wait()

	report := b.finalize()
	metrics.RecordReport(report, time.Since(start))

	successes := 0
	for _, a := range report.Attempts {
		if a.Success {
			successes++
		}
	}
	s.logger.Infof("Notification summary for %s: %d/%d attempts successful (%d%%)",
		p.ComplaintID, successes, len(report.Attempts), report.SuccessRate)

	if s.store != nil {
		s.store.Append("notify_admins", report.Delivered(), map[string]interface{}{
			"complaint_id": report.ComplaintID,
			"whatsapp":     report.WhatsApp,
			"sms":          report.SMS,
			"email":        report.Email,
			"success_rate": report.SuccessRate,
			"attempts":     report.Attempts,
		})
	}
	s.hub.Broadcast(report)
	return report
}

// sendAdminMessages runs the WhatsApp/SMS track. Recipients are processed
// sequentially so one complaint never holds more than a single in-flight
// request against the messaging provider.
func (s *Service) sendAdminMessages(ctx context.Context, p models.ProblemNotice, b *reportBuilder) {
	if s.messaging == nil {
		s.logger.Infof("Messaging provider not configured, skipping WhatsApp/SMS for %s", p.ComplaintID)
		return
	}
	phones := s.cfg.Recipients.AdminPhones
	if len(phones) == 0 {
		s.logger.Warnf("No valid admin phone numbers configured, skipping WhatsApp/SMS for %s", p.ComplaintID)
		return
	}

	smsBody := format.SMSBody(p)
	if !s.messaging.WhatsAppConfigured() {
		s.logger.Infof("WhatsApp sender not configured, sending bulk SMS for %s", p.ComplaintID)
		s.bulkSMS(ctx, phones, smsBody, b)
		return
	}

	whatsappBody := format.WhatsAppBody(p)
	for _, admin := range phones {
		s.whatsAppWithFallback(ctx, admin, whatsappBody, smsBody, b)
	}
}

// whatsAppWithFallback sends one recipient's WhatsApp message under the
// retry engine. A rate/quota-limited failure switches to SMS immediately:
// retrying against a firm quota only burns the remaining attempts. Any other
// failure retries with backoff and falls back to SMS once the attempts are
// exhausted.
func (s *Service) whatsAppWithFallback(ctx context.Context, admin, whatsappBody, smsBody string, b *reportBuilder) {
	op := func() (bool, error) {
		sid, err := s.messaging.SendWhatsApp(ctx, admin, whatsappBody)
		if err == nil {
			s.logger.Infof("WhatsApp sent to %s: %s", admin, sid)
			b.add(attempt(models.ChannelWhatsApp, admin, sid, nil, ""))
			return true, nil
		}
		if kind := providers.Classify(err); kind == models.ErrKindRateLimited {
			s.logger.Warnf("Rate/quota limit hit for %s, trying SMS fallback", admin)
			b.add(attempt(models.ChannelWhatsApp, admin, "", err, kind))
			s.smsFallback(ctx, admin, smsBody, b)
			// the fallback replaces the remaining WhatsApp attempts
			return true, nil
		}
		return false, err
	}

	ok, err := backoff.Retry(ctx, s.logger, s.cfg.Notification.MaxAttempts, s.cfg.Notification.BaseDelay, op)
	if ok || err == nil {
		return
	}

	s.logger.Errorf("WhatsApp to %s failed after retries: %v", admin, err)
	b.add(attempt(models.ChannelWhatsApp, admin, "", err, providers.Classify(err)))
	s.smsFallback(ctx, admin, smsBody, b)
}

// smsFallback makes a single SMS attempt for one recipient.
func (s *Service) smsFallback(ctx context.Context, admin, smsBody string, b *reportBuilder) bool {
	if !s.messaging.SMSConfigured() {
		s.logger.Warnf("SMS sender not configured, no fallback available for %s", admin)
		return false
	}
	sid, err := s.messaging.SendSMS(ctx, admin, smsBody)
	if err != nil {
		s.logger.Errorf("SMS fallback failed for %s: %v", admin, err)
		b.add(attempt(models.ChannelSMS, admin, "", err, providers.Classify(err)))
		return false
	}
	s.logger.Infof("SMS sent to %s: %s", admin, sid)
	b.add(attempt(models.ChannelSMS, admin, sid, nil, ""))
	return true
}

// bulkSMS is the whole-list SMS pass used when WhatsApp is not configured at
// all.
func (s *Service) bulkSMS(ctx context.Context, phones []string, smsBody string, b *reportBuilder) {
	if !s.messaging.SMSConfigured() {
		s.logger.Warnf("SMS sender not configured, skipping bulk SMS pass")
		return
	}
	for _, admin := range phones {
		sid, err := s.messaging.SendSMS(ctx, admin, smsBody)
		if err != nil {
			s.logger.Errorf("SMS failed for %s: %v", admin, err)
			b.add(attempt(models.ChannelSMS, admin, "", err, providers.Classify(err)))
			continue
		}
		s.logger.Infof("SMS sent to %s: %s", admin, sid)
		b.add(attempt(models.ChannelSMS, admin, sid, nil, ""))
	}
}

// sendAdminEmail runs the email track: one formatted message to the
// comma-joined admin list, wrapped in the retry engine, recorded as a single
// attempt.
func (s *Service) sendAdminEmail(ctx context.Context, p models.ProblemNotice, b *reportBuilder) {
	if s.email == nil {
		s.logger.Infof("Email provider not configured, skipping email for %s", p.ComplaintID)
		return
	}
	emails := s.cfg.Recipients.AdminEmails
	if len(emails) == 0 {
		s.logger.Warnf("No valid admin email addresses configured, skipping email for %s", p.ComplaintID)
		return
	}

	subject := format.EmailSubject(p)
	html := format.EmailHTML(p)
	recipient := strings.Join(emails, ",")

	var sid string
	ok, err := backoff.Retry(ctx, s.logger, s.cfg.Notification.MaxAttempts, s.cfg.Notification.BaseDelay, func() (bool, error) {
		id, sendErr := s.email.Send(ctx, emails, subject, html)
		if sendErr != nil {
			return false, sendErr
		}
		sid = id
		return true, nil
	})
	if ok {
		s.logger.Infof("Email sent to %s", recipient)
		b.add(attempt(models.ChannelEmail, recipient, sid, nil, ""))
		return
	}
	s.logger.Errorf("Email to %s failed after retries: %v", recipient, err)
	b.add(attempt(models.ChannelEmail, recipient, "", err, providers.Classify(err)))
}

// NotifySolved sends the resolved notice as a single SMS to the reporter's
// own phone. The number is normalized with the configured default country
// code first; a number that still fails E.164 validation skips the send and
// returns false.
func (s *Service) NotifySolved(ctx context.Context, p models.ProblemNotice) bool {
	if s.messaging == nil || !s.messaging.SMSConfigured() {
		s.logger.Infof("SMS not configured, skipping solved notice for %s", p.ComplaintID)
		return false
	}

	to, ok := s.normalize(p.ReporterPhone, s.cfg.Phone.DefaultCountryCode)
	if !ok {
		s.logger.Warnf("Invalid reporter phone %q for %s, skipping solved notice", p.ReporterPhone, p.ComplaintID)
		return false
	}

	sid, err := s.messaging.SendSMS(ctx, to, format.SolvedBody(p))
	if err != nil {
		s.logger.Errorf("Solved notice to %s failed: %v", to, err)
		if s.store != nil {
			s.store.Append("solved_notification", false, map[string]interface{}{
				"complaint_id": p.ComplaintID,
				"phone":        to,
				"error":        err.Error(),
			})
		}
		return false
	}

	s.logger.Infof("Solved notice sent to %s: %s", to, sid)
	if s.store != nil {
		s.store.Append("solved_notification", true, map[string]interface{}{
			"complaint_id": p.ComplaintID,
			"phone":        to,
			"sid":          sid,
		})
	}
	return true
}
