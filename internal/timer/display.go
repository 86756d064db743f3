package timer

import (
	"fmt"
	"time"
)

// Color is the display color category for the timer readout.
type Color int

const (
	Neutral Color = iota
	PausedOrange
	RunningGreen
	BreakCyan
)

// String implements fmt.Stringer.
func (c Color) String() string {
	switch c {
	case PausedOrange:
		return "paused-orange"
	case RunningGreen:
		return "running-green"
	case BreakCyan:
		return "break-cyan"
	default:
		return "neutral"
	}
}

// ReadyText is shown while no countdown is active.
const ReadyText = "Ready"

// Display is the rendered timer readout.
type Display struct {
	Text  string
	Color Color
}

// Display renders the mirror at now.
func (m Mirror) Display(now time.Time) Display {
	remaining, ok := m.Remaining(now)
	if !ok {
		return Display{Text: ReadyText, Color: Neutral}
	}

	clock := Clock(remaining)
	switch m.Phase {
	case Paused:
		return Display{Text: "PAUSED " + clock, Color: PausedOrange}
	case Running:
		return Display{Text: "Focus " + clock, Color: RunningGreen}
	default:
		return Display{Text: "Break " + clock, Color: BreakCyan}
	}
}

// Clock formats d as mm:ss, truncating fractional seconds.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
