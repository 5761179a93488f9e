// Package metrics exposes Prometheus collectors shared by the bot runtime.
package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "interviewbot"

var (
	// CommandsTotal counts handled interview commands.
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "interview",
			Name:      "commands_total",
			Help:      "Total interview commands by command and resulting action",
		},
		[]string{"command", "action"},
	)

	// QuestionsDispensed counts questions handed out to users.
	QuestionsDispensed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "interview",
			Name:      "questions_dispensed_total",
			Help:      "Total questions drawn from user pools",
		},
	)

	// SessionsStarted reports sessions currently in the started state.
	SessionsStarted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "interview",
			Name:      "sessions_started",
			Help:      "Sessions currently in the started state",
		},
	)

	// UpdatesTotal counts inbound Telegram updates by kind.
	UpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telegram",
			Name:      "updates_total",
			Help:      "Total inbound Telegram updates",
		},
		[]string{"kind"},
	)

	// HandlerDuration observes handler latency.
	HandlerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "telegram",
			Name:      "handler_duration_seconds",
			Help:      "Telegram handler duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"handler", "outcome"},
	)

	// SendsTotal counts outbound sends by result.
	SendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telegram",
			Name:      "sends_total",
			Help:      "Total outbound Telegram calls by action and status",
		},
		[]string{"action", "status"},
	)
)

// BuildInfo is a constant 1 labelled with the running build.
var BuildInfo = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "Build identity of the running binary",
	},
	[]string{"version", "commit", "go_version"},
)

// RecordBuild publishes the build identity once at startup.
func RecordBuild(version, commit string) {
	BuildInfo.WithLabelValues(version, commit, runtime.Version()).Set(1)
}

// RecordCommand records a handled interview command.
func RecordCommand(command, action string) {
	CommandsTotal.WithLabelValues(command, action).Inc()
	if action == "draw" {
		QuestionsDispensed.Inc()
	}
}

// RecordHandler records handler latency.
func RecordHandler(handler, outcome string, durationSec float64) {
	HandlerDuration.WithLabelValues(handler, outcome).Observe(durationSec)
}

// RecordSend records an outbound call result.
func RecordSend(action, status string) {
	SendsTotal.WithLabelValues(action, status).Inc()
}
