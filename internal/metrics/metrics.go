// Package metrics exposes pomohand counters to Prometheus.
package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the session counters.
type Metrics struct {
	// Frame counters
	Frames      atomic.Uint64
	HandsSeen   atomic.Uint64
	CenteredHit atomic.Uint64

	// Timer phase as its numeric value (0 stopped, 1 running, 2 paused, 3 break)
	TimerPhase atomic.Int64

	commands    *prometheus.CounterVec
	droppedCmds *prometheus.CounterVec
	deviceLines *prometheus.CounterVec
	registry    *prometheus.Registry
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pomohand_commands_confirmed_total",
			Help: "Gesture commands confirmed by the hold debounce",
		}, []string{"command"}),
		droppedCmds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pomohand_commands_dropped_total",
			Help: "Confirmed commands that could not be written to the device",
		}, []string{"command"}),
		deviceLines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pomohand_device_lines_total",
			Help: "Status lines received from the device by matched rule",
		}, []string{"event"}),
	}

	m.registry.MustRegister(m.commands, m.droppedCmds, m.deviceLines)

	m.registry.MustRegister(prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "pomohand_frames_total",
			Help: "Frames run through the gesture pipeline",
		},
		func() float64 { return float64(m.Frames.Load()) },
	))

	m.registry.MustRegister(prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "pomohand_hands_seen_total",
			Help: "Frames in which a hand was detected",
		},
		func() float64 { return float64(m.HandsSeen.Load()) },
	))

	m.registry.MustRegister(prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "pomohand_hands_centered_total",
			Help: "Frames in which the hand was inside the gesture zone",
		},
		func() float64 { return float64(m.CenteredHit.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "pomohand_timer_phase",
			Help: "Mirrored device timer phase (0 stopped, 1 running, 2 paused, 3 break)",
		},
		func() float64 { return float64(m.TimerPhase.Load()) },
	))

	return m
}

// CommandConfirmed counts a confirmed command.
func (m *Metrics) CommandConfirmed(token string) {
	m.commands.WithLabelValues(token).Inc()
}

// CommandDropped counts a command that never reached the device.
func (m *Metrics) CommandDropped(token string) {
	m.droppedCmds.WithLabelValues(token).Inc()
}

// DeviceLine counts a device status line by the rule it matched.
func (m *Metrics) DeviceLine(event string) {
	m.deviceLines.WithLabelValues(event).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
