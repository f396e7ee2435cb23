package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "91", cfg.Phone.DefaultCountryCode)
	assert.Equal(t, "notification-logs.json", cfg.DeliveryLog.Path)
	assert.Equal(t, 100, cfg.DeliveryLog.Capacity)
	assert.Equal(t, ":8080", cfg.API.Port)
	assert.Equal(t, "/api/v0", cfg.API.BasePath)
	assert.Equal(t, 500, cfg.Notification.QueueSize)
	assert.Equal(t, 3, cfg.Notification.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Notification.BaseDelay)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFiltersInvalidPhones(t *testing.T) {
	t.Setenv("ADMIN_PHONES", "+8801712345678,01712345678,+14155238886,+0123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"+8801712345678", "+14155238886"}, cfg.Recipients.AdminPhones)
	require.Len(t, cfg.Warnings, 2)
	assert.Contains(t, cfg.Warnings[0], "01712345678")
	assert.Contains(t, cfg.Warnings[1], "+0123")
}

func TestLoadLegacyPhoneSlots(t *testing.T) {
	t.Setenv("ADMIN_PHONE_1", "+8801712345678")
	t.Setenv("ADMIN_PHONE_3", "+919876543210")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"+8801712345678", "+919876543210"}, cfg.Recipients.AdminPhones)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadFiltersInvalidEmails(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "ward26@example.com,not-an-address,chairman@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"ward26@example.com", "chairman@example.com"}, cfg.Recipients.AdminEmails)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "not-an-address")
}

func TestLoadEmailSettings(t *testing.T) {
	t.Setenv("EMAIL_HOST", "smtp.example.com")
	t.Setenv("EMAIL_PORT", "587")
	t.Setenv("EMAIL_USER", "noreply@example.com")
	t.Setenv("EMAIL_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com", cfg.Email.SMTPHost)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	assert.Equal(t, "noreply@example.com", cfg.Email.Username)
	assert.Equal(t, "secret", cfg.Email.Password)
}

func TestLoadCountryCodeOverride(t *testing.T) {
	t.Setenv("DEFAULT_COUNTRY_CODE", "880")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "880", cfg.Phone.DefaultCountryCode)
}
