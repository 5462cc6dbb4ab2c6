package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the metrics surface used by services and middleware.
// Implementations: Metrics (Prometheus) and NoopMetrics.
type Recorder interface {
	// Authentication
	RecordRegistration(success bool)
	RecordLogin(authSource string, success bool)
	RecordEmailSent(kind string, success bool)
	RecordPasswordReset(stage string, success bool)

	// Reviews and votes
	RecordReviewCreated(success bool)
	RecordReviewDeleted(actor string)
	RecordVote(direction, action string)

	// Watchlist
	RecordWatchlistChange(op string, success bool)

	// AI collaborator
	RecordAIRequest(endpoint string, success bool, duration time.Duration)
	RecordAICacheLookup(hit bool)

	// Database
	RecordDatabaseQueryError(operation string)
}

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Authentication Metrics
	RegistrationsTotal  *prometheus.CounterVec
	AuthLoginTotal      *prometheus.CounterVec
	EmailsSentTotal     *prometheus.CounterVec
	PasswordResetsTotal *prometheus.CounterVec

	// Review Metrics
	ReviewsCreatedTotal *prometheus.CounterVec
	ReviewsDeletedTotal *prometheus.CounterVec
	ReviewVotesTotal    *prometheus.CounterVec

	// Watchlist Metrics
	WatchlistChangesTotal *prometheus.CounterVec

	// AI Metrics
	AIRequestsTotal   *prometheus.CounterVec
	AIRequestDuration *prometheus.HistogramVec
	AICacheTotal      *prometheus.CounterVec

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag.
// If enabled=true, returns Prometheus-based Metrics.
// If enabled=false, returns NoopMetrics (zero overhead).
// Uses sync.Once to ensure Prometheus metrics are only registered once.
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	m := &Metrics{
		RegistrationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_registrations_total",
				Help: "Total number of registration attempts",
			},
			[]string{"result"}, // success, error
		),
		AuthLoginTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_total",
				Help: "Total number of login attempts",
			},
			[]string{"auth_source", "result"}, // auth_source: local, google; result: success, failure
		),
		EmailsSentTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emails_sent_total",
				Help: "Total number of transactional email dispatch attempts",
			},
			[]string{"kind", "result"}, // kind: verification, password_reset
		),
		PasswordResetsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_password_resets_total",
				Help: "Total number of password reset operations",
			},
			[]string{"stage", "result"}, // stage: requested, completed
		),

		ReviewsCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reviews_created_total",
				Help: "Total number of review creation attempts",
			},
			[]string{"result"}, // success, conflict, error
		),
		ReviewsDeletedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reviews_deleted_total",
				Help: "Total number of reviews deleted",
			},
			[]string{"actor"}, // owner, admin, cascade
		),
		ReviewVotesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "review_votes_total",
				Help: "Total number of review vote toggles",
			},
			[]string{"direction", "action"}, // direction: like, dislike; action: added, removed, switched
		),

		WatchlistChangesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "watchlist_changes_total",
				Help: "Total number of watchlist mutations",
			},
			[]string{"op", "result"}, // op: add, remove
		),

		AIRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_requests_total",
				Help: "Total number of generative model requests",
			},
			[]string{"endpoint", "result"}, // endpoint: recommendations, search, review_analysis, chat, movie_analysis, test
		),
		AIRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_request_duration_seconds",
				Help:    "Latency of generative model requests",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
			},
			[]string{"endpoint"},
		),
		AICacheTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_cache_lookups_total",
				Help: "Total number of AI response cache lookups",
			},
			[]string{"result"}, // hit, miss
		),

		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				Buckets: []float64{
					0.001,
					0.005,
					0.010,
					0.025,
					0.050,
					0.100,
					0.250,
					0.500,
					1.0,
					2.5,
					5.0,
					10.0,
				},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),

		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of database query errors",
			},
			[]string{"operation"},
		),
	}

	return m
}

const (
	resultSuccess = "success"
	resultError   = "error"
	resultFailure = "failure"
)

// RecordRegistration records a registration attempt.
func (m *Metrics) RecordRegistration(success bool) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.RegistrationsTotal.WithLabelValues(result).Inc()
}

// RecordLogin records a login attempt by source.
func (m *Metrics) RecordLogin(authSource string, success bool) {
	result := resultSuccess
	if !success {
		result = resultFailure
	}
	m.AuthLoginTotal.WithLabelValues(authSource, result).Inc()
}

// RecordEmailSent records a transactional email dispatch attempt.
func (m *Metrics) RecordEmailSent(kind string, success bool) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.EmailsSentTotal.WithLabelValues(kind, result).Inc()
}

// RecordPasswordReset records a reset request or completion.
func (m *Metrics) RecordPasswordReset(stage string, success bool) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.PasswordResetsTotal.WithLabelValues(stage, result).Inc()
}

// RecordReviewCreated records a review creation attempt.
func (m *Metrics) RecordReviewCreated(success bool) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.ReviewsCreatedTotal.WithLabelValues(result).Inc()
}

// RecordReviewDeleted records who removed a review.
func (m *Metrics) RecordReviewDeleted(actor string) {
	m.ReviewsDeletedTotal.WithLabelValues(actor).Inc()
}

// RecordVote records a vote toggle outcome.
func (m *Metrics) RecordVote(direction, action string) {
	m.ReviewVotesTotal.WithLabelValues(direction, action).Inc()
}

// RecordWatchlistChange records a watchlist mutation.
func (m *Metrics) RecordWatchlistChange(op string, success bool) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.WatchlistChangesTotal.WithLabelValues(op, result).Inc()
}

// RecordAIRequest records a generative model call.
func (m *Metrics) RecordAIRequest(endpoint string, success bool, duration time.Duration) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.AIRequestsTotal.WithLabelValues(endpoint, result).Inc()
	m.AIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordAICacheLookup records an AI response cache hit or miss.
func (m *Metrics) RecordAICacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.AICacheTotal.WithLabelValues(result).Inc()
}

// RecordDatabaseQueryError records a database query error.
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}
