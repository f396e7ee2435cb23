// Package metrics exposes Prometheus instrumentation for the delivery
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ward26-notification-service/internal/models"
)

var (
	// DeliveryAttempts counts provider calls by channel and outcome.
	DeliveryAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ward26_delivery_attempts_total",
		Help: "Delivery attempts by channel and outcome.",
	}, []string{"channel", "outcome"})

	// DeliveryReports counts completed notification invocations by overall
	// result.
	DeliveryReports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ward26_delivery_reports_total",
		Help: "Completed admin notification invocations by overall result.",
	}, []string{"result"})

	// NotificationDuration observes the end-to-end duration of one admin
	// notification invocation, backoff delays included.
	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ward26_notification_duration_seconds",
		Help:    "End-to-end duration of one admin notification invocation.",
		Buckets: prometheus.DefBuckets,
	})
)

// RecordAttempt counts one delivery attempt.
func RecordAttempt(a models.DeliveryAttempt) {
	outcome := "failure"
	if a.Success {
		outcome = "success"
	}
	DeliveryAttempts.WithLabelValues(string(a.Channel), outcome).Inc()
}

// RecordReport counts one finished invocation and its duration.
func RecordReport(r *models.DeliveryReport, elapsed time.Duration) {
	result := "failure"
	if r.Delivered() {
		result = "success"
	}
	DeliveryReports.WithLabelValues(result).Inc()
	NotificationDuration.Observe(elapsed.Seconds())
}
