package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ward26-notification-service/internal/phone"
)

// Config holds application configuration loaded from environment. Every
// channel is optional: missing credentials disable that channel instead of
// failing startup.
type Config struct {
	Messaging struct {
		AccountSID     string
		AuthToken      string
		WhatsAppNumber string
		SMSNumber      string
	}
	Email struct {
		SMTPHost string
		SMTPPort int
		Username string
		Password string
	}
	Recipients struct {
		AdminPhones []string
		AdminEmails []string
	}
	Phone struct {
		DefaultCountryCode string
	}
	DeliveryLog struct {
		Path     string
		Capacity int
	}
	Logging struct {
		Dir   string
		Level string
	}
	API struct {
		Port     string
		BasePath string
	}
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	Notification struct {
		QueueSize   int
		MaxWorkers  int
		MaxAttempts int
		BaseDelay   time.Duration
	}

	// Warnings collects non-fatal configuration problems (invalid
	// recipients, dropped entries) for the caller to log once the logger
	// is up.
	Warnings []string
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// Twilio messaging settings
	cfg.Messaging.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.Messaging.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.Messaging.WhatsAppNumber = os.Getenv("TWILIO_WHATSAPP_NUMBER")
	cfg.Messaging.SMSNumber = os.Getenv("TWILIO_PHONE_NUMBER")

	// SMTP settings
	cfg.Email.SMTPHost = os.Getenv("EMAIL_HOST")
	if p, err := strconv.Atoi(os.Getenv("EMAIL_PORT")); err == nil {
		cfg.Email.SMTPPort = p
	}
	cfg.Email.Username = os.Getenv("EMAIL_USER")
	cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")

	// Admin recipients, validated up front so invalid entries never reach
	// a provider call
	cfg.Recipients.AdminPhones = cfg.filterPhones(recipientList("ADMIN_PHONES", "ADMIN_PHONE_"))
	cfg.Recipients.AdminEmails = cfg.filterEmails(recipientList("ADMIN_EMAILS", "ADMIN_EMAIL_"))

	cfg.Phone.DefaultCountryCode = os.Getenv("DEFAULT_COUNTRY_CODE")

	// Delivery log settings
	cfg.DeliveryLog.Path = os.Getenv("NOTIFICATION_LOG_FILE")
	if c, err := strconv.Atoi(os.Getenv("NOTIFICATION_LOG_CAPACITY")); err == nil {
		cfg.DeliveryLog.Capacity = c
	}

	// Logging settings
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// API settings
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	// Kafka settings (optional; consumer is skipped when broker is unset)
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	// Worker settings
	if qs, err := strconv.Atoi(os.Getenv("QUEUE_SIZE")); err == nil {
		cfg.Notification.QueueSize = qs
	}
	if mw, err := strconv.Atoi(os.Getenv("MAX_WORKERS")); err == nil {
		cfg.Notification.MaxWorkers = mw
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Phone.DefaultCountryCode == "" {
		c.Phone.DefaultCountryCode = "91"
	}
	if c.DeliveryLog.Path == "" {
		c.DeliveryLog.Path = "notification-logs.json"
	}
	if c.DeliveryLog.Capacity == 0 {
		c.DeliveryLog.Capacity = 100
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.API.Port == "" {
		c.API.Port = ":8080"
	}
	if c.API.BasePath == "" {
		c.API.BasePath = "/api/v0"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "problem_events"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "ward26-notification-service"
	}
	if c.Notification.QueueSize == 0 {
		c.Notification.QueueSize = 500
	}
	if c.Notification.MaxWorkers == 0 {
		c.Notification.MaxWorkers = 4
	}
	if c.Notification.MaxAttempts == 0 {
		c.Notification.MaxAttempts = 3
	}
	if c.Notification.BaseDelay == 0 {
		c.Notification.BaseDelay = time.Second
	}
}

// recipientList reads a comma-separated list, falling back to the legacy
// numbered slots (PREFIX1..PREFIX3) used by the original deployment env.
func recipientList(listKey, slotPrefix string) []string {
	var raw []string
	if v := os.Getenv(listKey); v != "" {
		raw = strings.Split(v, ",")
	} else {
		for i := 1; i <= 3; i++ {
			raw = append(raw, os.Getenv(fmt.Sprintf("%s%d", slotPrefix, i)))
		}
	}
	var out []string
	for _, entry := range raw {
		if entry = strings.TrimSpace(entry); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

func (c *Config) filterPhones(entries []string) []string {
	var valid []string
	for _, number := range entries {
		if phone.IsValidE164(number) {
			valid = append(valid, number)
			continue
		}
		c.Warnings = append(c.Warnings, fmt.Sprintf("Ignoring admin phone %q: not a valid E.164 number", number))
	}
	return valid
}

func (c *Config) filterEmails(entries []string) []string {
	var valid []string
	for _, addr := range entries {
		if strings.Contains(addr, "@") {
			valid = append(valid, addr)
			continue
		}
		c.Warnings = append(c.Warnings, fmt.Sprintf("Ignoring admin email %q: not a valid address", addr))
	}
	return valid
}
