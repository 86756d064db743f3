package gesture

import "fmt"

// DefaultHoldFrames is the number of consecutive frames a gesture must be
// held before its command fires.
const DefaultHoldFrames = 15

// NoHandMessage is the progress text shown while no hand is in view.
const NoHandMessage = "Show hand gesture in center"

// HoldState tracks the current hold episode: a run of consecutive frames
// classified to the same gesture.
type HoldState struct {
	Current    Gesture
	Frames     int
	Dispatched bool
}

// Step advances the hold state by one frame classified as g. It returns the
// next state and whether the command for g must be dispatched on this frame.
// At most one dispatch happens per episode; the first frame of an episode
// never fires.
func (s HoldState) Step(g Gesture, threshold int) (HoldState, bool) {
	switch {
	case g == None:
		return HoldState{}, false
	case g != s.Current:
		return HoldState{Current: g, Frames: 1}, false
	case s.Dispatched:
		return s, false
	}

	s.Frames++
	if s.Frames >= threshold {
		s.Dispatched = true
		return s, true
	}
	return s, false
}

// Progress renders the feedback line for a hold state after a frame
// classified as r.
func (s HoldState) Progress(r Result, threshold int) string {
	switch {
	case r.Gesture == None:
		return r.Description
	case s.Dispatched:
		return "✓ " + r.Description
	default:
		return fmt.Sprintf("Hold... (%d/%d)", s.Frames, threshold)
	}
}
