package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"ward26-notification-service/internal/models"
)

func TestRecordAttempt(t *testing.T) {
	before := testutil.ToFloat64(DeliveryAttempts.WithLabelValues("whatsapp", "success"))
	RecordAttempt(models.DeliveryAttempt{Channel: models.ChannelWhatsApp, Success: true})
	after := testutil.ToFloat64(DeliveryAttempts.WithLabelValues("whatsapp", "success"))
	assert.Equal(t, before+1, after)

	beforeFail := testutil.ToFloat64(DeliveryAttempts.WithLabelValues("sms", "failure"))
	RecordAttempt(models.DeliveryAttempt{Channel: models.ChannelSMS, ErrorKind: models.ErrKindUnknown})
	afterFail := testutil.ToFloat64(DeliveryAttempts.WithLabelValues("sms", "failure"))
	assert.Equal(t, beforeFail+1, afterFail)
}

func TestRecordReport(t *testing.T) {
	delivered := &models.DeliveryReport{WhatsApp: true}
	before := testutil.ToFloat64(DeliveryReports.WithLabelValues("success"))
	RecordReport(delivered, 10*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(DeliveryReports.WithLabelValues("success")))

	failed := &models.DeliveryReport{}
	beforeFail := testutil.ToFloat64(DeliveryReports.WithLabelValues("failure"))
	RecordReport(failed, time.Millisecond)
	assert.Equal(t, beforeFail+1, testutil.ToFloat64(DeliveryReports.WithLabelValues("failure")))
}
