// Package timer mirrors the Pomodoro device's timer from its status lines.
//
// The device is authoritative. The mirror only records what the device last
// announced and when, and derives the remaining time for display from that
// anchor until the next status line arrives.
package timer

import (
	"strings"
	"time"
)

// Default durations announced phases are assumed to last.
const (
	DefaultPomodoro = 10 * time.Second
	DefaultBreak    = 5 * time.Second
)

// Phase is the device timer phase.
type Phase int

const (
	Stopped Phase = iota
	Running
	Paused
	Break
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	case Break:
		return "BREAK"
	default:
		return "STOPPED"
	}
}

// Durations are the phase lengths programmed into the device.
type Durations struct {
	Pomodoro time.Duration
	Break    time.Duration
}

// DefaultDurations returns the stock device durations.
func DefaultDurations() Durations {
	return Durations{Pomodoro: DefaultPomodoro, Break: DefaultBreak}
}

// Event identifies which status rule a line matched.
type Event int

const (
	Unmatched Event = iota
	Started
	BreakStarted
	PausedEvent
	PauseIgnored
	StoppedEvent
	Completed
)

// String implements fmt.Stringer.
func (e Event) String() string {
	switch e {
	case Started:
		return "started"
	case BreakStarted:
		return "break_started"
	case PausedEvent:
		return "paused"
	case PauseIgnored:
		return "pause_ignored"
	case StoppedEvent:
		return "stopped"
	case Completed:
		return "complete"
	default:
		return "unmatched"
	}
}

// Status line fragments sent by the device firmware.
const (
	markStarted  = "Timer STARTED"
	markPomodoro = "Pomodoro"
	markBreak    = "BREAK Started"
	markPaused   = "Timer PAUSED"
	markStopped  = "Timer STOPPED"
	markComplete = "COMPLETE"
)

// Mirror is the local copy of the device timer.
//
// Anchor is set when the phase becomes Running or Break and cleared when it
// becomes Stopped. PausedElapsed is only meaningful while Paused.
type Mirror struct {
	Phase         Phase
	Anchor        time.Time
	Duration      time.Duration
	PausedElapsed time.Duration
}

// HasAnchor reports whether an anchor time is set.
func (m Mirror) HasAnchor() bool {
	return !m.Anchor.IsZero()
}

// Apply returns the mirror after the device reported line at now, and which
// rule matched. Rules are substring matches checked in a fixed order; the
// first match wins.
func (m Mirror) Apply(line string, now time.Time, d Durations) (Mirror, Event) {
	switch {
	case strings.Contains(line, markStarted) && strings.Contains(line, markPomodoro):
		return Mirror{Phase: Running, Anchor: now, Duration: d.Pomodoro}, Started

	case strings.Contains(line, markBreak):
		return Mirror{Phase: Break, Anchor: now, Duration: d.Break}, BreakStarted

	case strings.Contains(line, markPaused):
		if (m.Phase != Running && m.Phase != Break) || !m.HasAnchor() {
			return m, PauseIgnored
		}
		m.PausedElapsed = now.Sub(m.Anchor)
		m.Phase = Paused
		return m, PausedEvent

	case strings.Contains(line, markStopped):
		m.Phase = Stopped
		m.Anchor = time.Time{}
		return m, StoppedEvent

	case strings.Contains(line, markComplete):
		m.Phase = Stopped
		m.Anchor = time.Time{}
		return m, Completed
	}

	return m, Unmatched
}

// Remaining returns the time left in the current phase at now, never negative.
// ok is false when there is no countdown to show.
func (m Mirror) Remaining(now time.Time) (remaining time.Duration, ok bool) {
	switch m.Phase {
	case Paused:
		remaining = m.Duration - m.PausedElapsed
	case Running, Break:
		if !m.HasAnchor() {
			return 0, false
		}
		remaining = m.Duration - now.Sub(m.Anchor)
	default:
		return 0, false
	}
	return max(remaining, 0), true
}
