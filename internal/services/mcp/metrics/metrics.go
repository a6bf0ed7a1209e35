// Package metrics records Prometheus metrics for MCP tool calls.
package metrics

import (
	"time"

	"github.com/louisbranch/vttbridge/internal/platform/branding"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeOK labels tool calls that returned without error.
const OutcomeOK = "ok"

// Metrics provides observability for the MCP tool surface.
type Metrics struct {
	// Tool calls by tool name and outcome (ok or an error code).
	ToolCalls *prometheus.CounterVec

	// Tool call latency by tool name.
	ToolLatency *prometheus.HistogramVec
}

// New creates the MCP metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ToolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: branding.Namespace,
			Subsystem: "mcp",
			Name:      "tool_calls_total",
			Help:      "Total MCP tool calls by tool and outcome",
		}, []string{"tool", "outcome"}),

		ToolLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: branding.Namespace,
			Subsystem: "mcp",
			Name:      "tool_duration_seconds",
			Help:      "Duration of MCP tool calls including host round trips",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"tool"}),
	}
}

// ObserveToolCall records one finished tool call.
func (m *Metrics) ObserveToolCall(tool, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.ToolCalls.WithLabelValues(tool, outcome).Inc()
	m.ToolLatency.WithLabelValues(tool).Observe(d.Seconds())
}
