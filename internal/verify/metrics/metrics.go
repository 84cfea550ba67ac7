package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the verifyd collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// Review decisions by outcome: VERIFIED, REJECTED
	Decisions *prometheus.CounterVec

	// Verification submissions accepted into the queue
	Submissions prometheus.Counter

	// MFA verification attempts by result: ok, invalid, expired, locked
	MFAVerifications *prometheus.CounterVec

	// Outbox deliveries by template and result: sent, retry, failed
	Notifications *prometheus.CounterVec

	// Upload slots issued by folder
	UploadSlots *prometheus.CounterVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New registers all collectors with reg. Tests pass a fresh
// prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifyd_review_decisions_total",
			Help: "Verification review decisions by outcome",
		}, []string{"outcome"}),

		Submissions: f.NewCounter(prometheus.CounterOpts{
			Name: "verifyd_verification_submissions_total",
			Help: "Verification requests submitted for review",
		}),

		MFAVerifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifyd_mfa_verifications_total",
			Help: "MFA code verification attempts by result",
		}, []string{"result"}),

		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifyd_notifications_total",
			Help: "Notification delivery attempts by template and result",
		}, []string{"template", "result"}),

		UploadSlots: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifyd_upload_slots_issued_total",
			Help: "Presigned upload slots issued by folder",
		}, []string{"folder"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifyd_http_requests_total",
			Help: "HTTP requests by route pattern and status code",
		}, []string{"route", "code"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "verifyd_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
	}
}

func (m *Metrics) IncDecision(outcome string) {
	if m != nil {
		m.Decisions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncSubmission() {
	if m != nil {
		m.Submissions.Inc()
	}
}

func (m *Metrics) IncMFAVerification(result string) {
	if m != nil {
		m.MFAVerifications.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncNotification(template, result string) {
	if m != nil {
		m.Notifications.WithLabelValues(template, result).Inc()
	}
}

func (m *Metrics) IncUploadSlot(folder string) {
	if m != nil {
		m.UploadSlots.WithLabelValues(folder).Inc()
	}
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}
