// Package notification holds the channel orchestrator and the facade the
// surrounding application calls on problem-submitted and problem-resolved
// events.
package notification

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"ward26-notification-service/internal/config"
	"ward26-notification-service/internal/deliverylog"
	"ward26-notification-service/internal/logging"
	"ward26-notification-service/internal/models"
	"ward26-notification-service/internal/phone"
)

// MessagingClient is the WhatsApp/SMS provider surface the orchestrator
// depends on.
type MessagingClient interface {
	SendWhatsApp(ctx context.Context, to, body string) (string, error)
	SendSMS(ctx context.Context, to, body string) (string, error)
	WhatsAppConfigured() bool
	SMSConfigured() bool
}

// EmailClient is the email provider surface. One call delivers to the whole
// recipient list.
type EmailClient interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) (string, error)
}

type taskKind int

const (
	taskNotifyAdmins taskKind = iota
	taskNotifySolved
)

type task struct {
	kind      taskKind
	requestID string
	problem   models.ProblemNotice
}

// Service dispatches problem notifications across WhatsApp, SMS and email.
// Delivery is best-effort: no method of Service ever returns an error to the
// caller.
type Service struct {
	cfg       config.Config
	logger    *logging.Logger
	messaging MessagingClient
	email     EmailClient
	store     *deliverylog.Store
	hub       *Hub
	normalize phone.NormalizeFunc

	tasks  chan task
	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup
}

// New constructs the notification Service. A nil messaging or email client
// marks that channel as unconfigured; store and hub may also be nil.
func New(cfg config.Config, logger *logging.Logger, messaging MessagingClient, email EmailClient, store *deliverylog.Store, hub *Hub) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		cfg:       cfg,
		logger:    logger,
		messaging: messaging,
		email:     email,
		store:     store,
		hub:       hub,
		normalize: phone.Normalize,
		tasks:     make(chan task, cfg.Notification.QueueSize),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetPhoneNormalizer swaps the reporter-phone normalization strategy.
func (s *Service) SetPhoneNormalizer(fn phone.NormalizeFunc) {
	s.normalize = fn
}

// ChannelsConfigured reports which channels have a usable provider.
func (s *Service) ChannelsConfigured() (whatsapp, sms, email bool) {
	if s.messaging != nil {
		whatsapp = s.messaging.WhatsAppConfigured()
		sms = s.messaging.SMSConfigured()
	}
	return whatsapp, sms, s.email != nil
}

// Start launches the worker pool.
func (s *Service) Start(wg *sync.WaitGroup) {
	s.wg = wg
	for i := 0; i < s.cfg.Notification.MaxWorkers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

// Stop signals the workers to drain and exit.
func (s *Service) Stop() {
	s.cancel()
}

// Dispatch hands off an admin notification without waiting for its outcome.
// A full queue drops the task with an error log; the triggering request is
// never blocked or failed.
func (s *Service) Dispatch(p models.ProblemNotice) {
	s.enqueue(task{kind: taskNotifyAdmins, requestID: uuid.NewString(), problem: p})
}

// DispatchSolved hands off a resolved notice for the reporter.
func (s *Service) DispatchSolved(p models.ProblemNotice) {
	s.enqueue(task{kind: taskNotifySolved, requestID: uuid.NewString(), problem: p})
}

func (s *Service) enqueue(t task) {
	select {
	case s.tasks <- t:
		s.logger.Infof("Queued notification task: request_id=%s complaint_id=%s", t.requestID, t.problem.ComplaintID)
	default:
		s.logger.Errorf("Queue full, dropping task: request_id=%s complaint_id=%s", t.requestID, t.problem.ComplaintID)
	}
}

func (s *Service) worker(id int) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			s.logger.Infof("Worker %d stopped", id)
			return
		case t := <-s.tasks:
			switch t.kind {
			case taskNotifyAdmins:
				report := s.NotifyAdmins(s.ctx, t.problem)
				s.logger.Infof("Task done: request_id=%s delivered=%t", t.requestID, report.Delivered())
			case taskNotifySolved:
				ok := s.NotifySolved(s.ctx, t.problem)
				s.logger.Infof("Task done: request_id=%s solved_notice_sent=%t", t.requestID, ok)
			}
		}
	}
}
