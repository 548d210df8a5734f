package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "respondo"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	modelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_call_duration_seconds",
			Help:      "Remote model call duration",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider", "status"},
	)

	tokenUsage = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_tokens_total",
			Help:      "Tokens reported by the model provider",
		},
		[]string{"provider", "type"}, // type: prompt/completion
	)

	replyOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_total",
			Help:      "Reply suggestions by outcome",
		},
		[]string{"outcome"}, // outcome: success/failure
	)

	approximatedTimestamps = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "approximated_timestamps_total",
			Help:      "Message timestamps that matched no format and were replaced by the clock",
		},
	)

	promptReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prompt_reloads_total",
			Help:      "System instruction reloads by trigger and status",
		},
		[]string{"trigger", "status"},
	)
)

func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
}

func ObserveModelCall(provider string, err error, duration time.Duration) {
	modelCallDuration.WithLabelValues(provider, statusLabel(err)).Observe(duration.Seconds())
}

func AddTokenUsage(provider string, prompt, completion int) {
	if prompt > 0 {
		tokenUsage.WithLabelValues(provider, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		tokenUsage.WithLabelValues(provider, "completion").Add(float64(completion))
	}
}

func RecordReply(err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	replyOutcomes.WithLabelValues(outcome).Inc()
}

func AddApproximatedTimestamps(n int) {
	if n > 0 {
		approximatedTimestamps.Add(float64(n))
	}
}

// RecordPromptReload counts a reload. trigger is "startup", "http" or "peer".
func RecordPromptReload(trigger string, err error) {
	promptReloads.WithLabelValues(trigger, statusLabel(err)).Inc()
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
