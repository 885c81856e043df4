// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// EngineResponsesTotal counts engine responses by category.
	EngineResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_responses_total",
			Help: "Total engine responses by category",
		},
		[]string{"category"},
	)

	// TurnDuration tracks the time from user submission to bot entry.
	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "turn_duration_seconds",
			Help:    "Time from user submission to bot reply",
			Buckets: []float64{.1, .5, 1, 2, 2.5, 3, 5, 10},
		},
		[]string{"outcome"},
	)

	// TurnsRejectedTotal counts submissions refused before anything was appended.
	TurnsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turns_rejected_total",
			Help: "Submissions rejected without appending an entry",
		},
		[]string{"reason"},
	)

	// TurnsInFlight tracks conversations awaiting a bot reply.
	TurnsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "turns_in_flight",
			Help: "Conversations currently awaiting a bot reply",
		},
	)

	// SubscribersActive tracks active SSE and WebSocket subscribers.
	SubscribersActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "subscribers_active",
			Help: "Number of active live subscribers",
		},
		[]string{"transport"},
	)

	// JournalPublishTotal counts entries mirrored to the journal.
	JournalPublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_publish_total",
			Help: "Entries mirrored to the journal",
		},
		[]string{"status"},
	)

	// ConversationsTotal tracks total conversations created.
	ConversationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conversations_total",
			Help: "Total conversations created",
		},
	)

	// EntriesTotal tracks total entries appended.
	EntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entries_total",
			Help: "Total conversation entries appended",
		},
		[]string{"sender"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordTurn records metrics for a finished turn.
func RecordTurn(outcome string, duration float64) {
	TurnDuration.WithLabelValues(outcome).Observe(duration)
}

// IncrementSubscribers increments the active subscriber count.
func IncrementSubscribers(transport string) {
	SubscribersActive.WithLabelValues(transport).Inc()
}

// DecrementSubscribers decrements the active subscriber count.
func DecrementSubscribers(transport string) {
	SubscribersActive.WithLabelValues(transport).Dec()
}
