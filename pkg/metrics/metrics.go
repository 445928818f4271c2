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

	// IntentsTotal tracks messages per detected intent.
	IntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbuddy_intents_total",
			Help: "Messages routed per detected intent",
		},
		[]string{"intent"},
	)

	// MessagesTotal tracks chat messages recorded.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbuddy_messages_total",
			Help: "Chat messages recorded",
		},
		[]string{"role"},
	)

	// WorkflowStepsTotal tracks workflow log entries appended.
	WorkflowStepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbuddy_workflow_steps_total",
			Help: "Workflow log entries appended",
		},
		[]string{"agent", "skill", "status"},
	)

	// TicketsTotal tracks access request tickets created.
	TicketsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbuddy_tickets_total",
			Help: "Access request tickets created",
		},
		[]string{"tool"},
	)

	// OnboardingCasesTotal tracks onboarding cases started.
	OnboardingCasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbuddy_onboarding_cases_total",
			Help: "Onboarding cases started",
		},
		[]string{"role"},
	)

	// SummarizerDuration tracks policy summarizer calls.
	SummarizerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workbuddy_summarizer_duration_seconds",
			Help:    "Policy summarizer call duration",
			Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 20},
		},
		[]string{"provider", "status"},
	)

	// SSEConnectionsActive tracks active SSE connections.
	SSEConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_connections_active",
			Help: "Number of active SSE connections",
		},
	)

	// ConversationsActive tracks open chat sessions.
	ConversationsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "workbuddy_conversations_active",
			Help: "Open chat sessions",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordWorkflowStep records one appended workflow log entry.
func RecordWorkflowStep(agent, skill, status string) {
	WorkflowStepsTotal.WithLabelValues(agent, skill, status).Inc()
}

// RecordSummarizer records a summarizer call.
func RecordSummarizer(provider, status string, duration float64) {
	SummarizerDuration.WithLabelValues(provider, status).Observe(duration)
}

// IncrementSSEConnections increments the active SSE connection count.
func IncrementSSEConnections() {
	SSEConnectionsActive.Inc()
}

// DecrementSSEConnections decrements the active SSE connection count.
func DecrementSSEConnections() {
	SSEConnectionsActive.Dec()
}
