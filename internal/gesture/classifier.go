package gesture

import (
	"fmt"

	"github.com/ayusman/pomohand/internal/detector"
)

// Gesture is one of the fixed timer commands, or None.
type Gesture int

const (
	None Gesture = iota
	Start
	Pause
	Break5
)

// Token returns the wire token for the gesture, or "" for None.
func (g Gesture) Token() string {
	switch g {
	case Start:
		return "START"
	case Pause:
		return "PAUSE"
	case Break5:
		return "BREAK5"
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (g Gesture) String() string {
	if g == None {
		return "NONE"
	}
	return g.Token()
}

// Result is the outcome of classifying one hand in one frame.
type Result struct {
	Fingers     FingerVector
	Centered    bool
	Facing      bool
	Gesture     Gesture
	Description string
}

// Classify maps a finger vector and the gate flags to a gesture. Centering is
// required for every gesture; after that the rules are checked in order:
// fist (and facing), palm (four non-thumb fingers, thumb ignored), thumbs up.
func Classify(v FingerVector, centered, facing bool) (Gesture, string) {
	if !centered {
		return None, "Hand not centered"
	}

	switch {
	case v.Count == 0:
		if facing {
			return Start, "Fist: Start Pomodoro"
		}
	case v.NonThumb() >= 4:
		return Pause, "Palm: Pause Timer"
	case v.Count == 1 && v.Up[Thumb] && v.NonThumb() == 0:
		return Break5, "Thumbs Up: Start Break"
	}

	return None, fmt.Sprintf("%d fingers", v.Count)
}

// Evaluate runs the finger classifier, the gate and the gesture classifier
// over one hand in a width x height frame.
func Evaluate(h *detector.HandLandmarks, width, height int, gate Gate) Result {
	r := Result{
		Fingers:  Fingers(h),
		Centered: gate.Centered(h, width, height),
		Facing:   gate.Facing(h),
	}
	r.Gesture, r.Description = Classify(r.Fingers, r.Centered, r.Facing)
	return r
}
