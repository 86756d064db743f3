package gesture

import (
	"math"

	"github.com/ayusman/pomohand/internal/detector"
)

// Default spatial gate settings.
const (
	DefaultCenterMargin    = 0.2
	DefaultFacingThreshold = 0.1
)

// Gate decides whether a hand is placed for deliberate gesture input.
type Gate struct {
	// CenterMargin is the fraction of the frame width kept clear on each side.
	CenterMargin float64
	// FacingThreshold is the largest wrist to middle-knuckle depth gap that
	// still counts as a palm facing the camera.
	FacingThreshold float64
}

// DefaultGate returns a Gate with the default margin and facing threshold.
func DefaultGate() Gate {
	return Gate{
		CenterMargin:    DefaultCenterMargin,
		FacingThreshold: DefaultFacingThreshold,
	}
}

// Centered reports whether the wrist lies strictly inside the gesture zone of
// a width x height frame. The vertical inset is also a fraction of the width,
// which makes the zone shorter than the horizontal one on landscape frames.
func (g Gate) Centered(h *detector.HandLandmarks, width, height int) bool {
	w, hgt := float64(width), float64(height)
	wrist := h.Points[detector.Wrist]
	x, y := wrist.X*w, wrist.Y*hgt

	marginX := w * g.CenterMargin
	marginY := w * g.CenterMargin

	return marginX < x && x < w-marginX &&
		marginY < y && y < hgt-marginY
}

// Facing reports whether the palm is roughly parallel to the camera.
func (g Gate) Facing(h *detector.HandLandmarks) bool {
	dz := h.Points[detector.Wrist].Z - h.Points[detector.MiddleMCP].Z
	return math.Abs(dz) < g.FacingThreshold
}
