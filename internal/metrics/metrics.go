// Package metrics declares the bot's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Ticks counts completed scheduler passes.
var Ticks = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "cricbot",
	Subsystem: "scheduler",
	Name:      "ticks_total",
	Help:      "Completed scheduler tick passes.",
})

// TickSkips counts passes skipped because the previous one was still
// running.
var TickSkips = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "cricbot",
	Subsystem: "scheduler",
	Name:      "tick_skips_total",
	Help:      "Tick passes skipped due to an in-flight predecessor.",
})

// Posts counts outbound channel posts by kind.
var Posts = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cricbot",
	Subsystem: "scheduler",
	Name:      "posts_total",
	Help:      "Outbound channel posts.",
}, []string{"kind"})

// UpstreamErrors counts failed upstream fetches.
var UpstreamErrors = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "cricbot",
	Subsystem: "upstream",
	Name:      "errors_total",
	Help:      "Failed cricket API fetches.",
})

// Tenants tracks the number of registered tenants, refreshed each tick.
var Tenants = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "cricbot",
	Name:      "tenants",
	Help:      "Registered tenants.",
})

// Commands counts handled bot commands.
var Commands = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cricbot",
	Subsystem: "bot",
	Name:      "commands_total",
	Help:      "Handled bot commands.",
}, []string{"command"})

// NewRegistry creates a Prometheus registry with runtime and bot
// collectors registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		Ticks,
		TickSkips,
		Posts,
		UpstreamErrors,
		Tenants,
		Commands,
	)
	return reg
}
