package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "f3_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "f3_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SubscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "f3_subscriptions_total",
			Help: "Subscriptions created, by origin (new or renewal)",
		},
		[]string{"origin"},
	)

	SubscriptionsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "f3_subscriptions_expired_total",
			Help: "Lazy expiry transitions persisted on read",
		},
	)

	SubscriptionsCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "f3_subscriptions_cancelled_total",
			Help: "Subscriptions cancelled by staff",
		},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "f3_payments_total",
			Help: "Payments recorded, by method",
		},
		[]string{"method"},
	)

	PaymentAmountCents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "f3_payment_amount_cents_total",
			Help: "Sum of recorded payments in cents, by method",
		},
		[]string{"method"},
	)

	CheckInsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "f3_check_ins_total",
			Help: "Total number of member check-ins",
		},
	)

	CheckInsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "f3_check_ins_rejected_total",
			Help: "Check-ins refused, by reason",
		},
		[]string{"reason"},
	)

	VisitDurationMinutes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "f3_visit_duration_minutes",
			Help:    "Duration of completed visits in minutes",
			Buckets: []float64{15, 30, 45, 60, 90, 120, 180, 240},
		},
	)

	RemindersSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "f3_reminders_sent_total",
			Help: "Expiry reminder emails, by outcome",
		},
		[]string{"status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSubscription(origin string) {
	SubscriptionsTotal.WithLabelValues(origin).Inc()
}

func RecordExpiry() {
	SubscriptionsExpiredTotal.Inc()
}

func RecordCancellation() {
	SubscriptionsCancelledTotal.Inc()
}

func RecordPayment(method string, cents int64) {
	PaymentsTotal.WithLabelValues(method).Inc()
	PaymentAmountCents.WithLabelValues(method).Add(float64(cents))
}

func RecordCheckIn() {
	CheckInsTotal.Inc()
}

func RecordCheckInRejected(reason string) {
	CheckInsRejectedTotal.WithLabelValues(reason).Inc()
}

func RecordCheckOut(durationMinutes int) {
	VisitDurationMinutes.Observe(float64(durationMinutes))
}

func RecordReminder(status string) {
	RemindersSentTotal.WithLabelValues(status).Inc()
}
