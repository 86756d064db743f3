// Package gesture turns hand landmarks into deliberate timer commands.
//
// Every function here is a pure transformation of its inputs: the finger
// classifier, the spatial gate, the gesture classifier and the hold-debounce
// transition can all be exercised with synthetic landmarks.
package gesture

import "github.com/ayusman/pomohand/internal/detector"

// Finger indexes into a FingerVector.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// fingerTips lists the tip landmark of every finger except the thumb.
var fingerTips = [...]int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}

// FingerVector records which fingers are extended, thumb first.
type FingerVector struct {
	Up    [NumFingers]bool
	Count int
}

// NonThumb returns how many of index, middle, ring and pinky are extended.
func (v FingerVector) NonThumb() int {
	n := 0
	for _, up := range v.Up[Index:] {
		if up {
			n++
		}
	}
	return n
}

// Fingers classifies each finger of h as extended or retracted.
//
// The thumb moves sideways, so it is judged on x against its IP joint, and the
// direction depends on handedness. The other fingers are extended when the
// tip is higher in the frame than the joint two landmarks below it.
func Fingers(h *detector.HandLandmarks) FingerVector {
	var v FingerVector

	tip, ip := h.Points[detector.ThumbTip], h.Points[detector.ThumbIP]
	if h.IsRight() {
		v.Up[Thumb] = tip.X < ip.X
	} else {
		v.Up[Thumb] = tip.X > ip.X
	}

	for i, t := range fingerTips {
		v.Up[Index+i] = h.Points[t].Y < h.Points[t-2].Y
	}

	for _, up := range v.Up {
		if up {
			v.Count++
		}
	}

	return v
}
