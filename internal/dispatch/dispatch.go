// Package dispatch sends confirmed gesture commands to the device.
package dispatch

import (
	"github.com/rs/zerolog"

	"github.com/ayusman/pomohand/internal/gesture"
	"github.com/ayusman/pomohand/internal/link"
	"github.com/ayusman/pomohand/internal/logger"
	"github.com/ayusman/pomohand/internal/metrics"
)

// Dispatcher writes command tokens to a device channel. Sends are fire and
// forget: a failed write is logged and the session carries on as if the
// command had been sent.
type Dispatcher struct {
	ch      link.Channel
	metrics *metrics.Metrics
	log     zerolog.Logger

	last string
}

// New creates a Dispatcher over ch. m may be nil.
func New(ch link.Channel, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		ch:      ch,
		metrics: m,
		log:     *logger.Named("dispatch"),
	}
}

// Dispatch sends the token for g. NONE is never sent. It reports whether
// a command was emitted, which is true even when the write failed.
func (d *Dispatcher) Dispatch(g gesture.Gesture) bool {
	token := g.Token()
	if token == "" {
		return false
	}

	d.last = token
	if d.metrics != nil {
		d.metrics.CommandConfirmed(token)
	}

	if err := d.ch.WriteLine(token); err != nil {
		d.log.Warn().Err(err).Str("command", token).Msg("command not delivered, continuing locally")
		if d.metrics != nil {
			d.metrics.CommandDropped(token)
		}
		return true
	}

	d.log.Info().Str("command", token).Msg("sent")
	return true
}

// Last returns the most recently emitted token, or "" if none.
func (d *Dispatcher) Last() string {
	return d.last
}
