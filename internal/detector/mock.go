package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect was invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// The preset poses below are right hands with the wrist at (0.5, 0.6), which
// lies inside the gesture zone of a 640x480 frame with the default margin,
// and with the palm parallel to the camera.

// curledFingers fills index through pinky with tips folded below their PIP joints.
func curledFingers(l *HandLandmarks) {
	l.Points[IndexMCP] = Point3D{X: 0.45, Y: 0.45, Z: -0.02}
	l.Points[IndexPIP] = Point3D{X: 0.45, Y: 0.40, Z: -0.03}
	l.Points[IndexDIP] = Point3D{X: 0.46, Y: 0.43, Z: -0.03}
	l.Points[IndexTip] = Point3D{X: 0.46, Y: 0.46, Z: -0.02}

	l.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.44, Z: -0.02}
	l.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.39, Z: -0.03}
	l.Points[MiddleDIP] = Point3D{X: 0.51, Y: 0.42, Z: -0.03}
	l.Points[MiddleTip] = Point3D{X: 0.51, Y: 0.45, Z: -0.02}

	l.Points[RingMCP] = Point3D{X: 0.55, Y: 0.45, Z: -0.02}
	l.Points[RingPIP] = Point3D{X: 0.55, Y: 0.41, Z: -0.03}
	l.Points[RingDIP] = Point3D{X: 0.56, Y: 0.44, Z: -0.03}
	l.Points[RingTip] = Point3D{X: 0.56, Y: 0.47, Z: -0.02}

	l.Points[PinkyMCP] = Point3D{X: 0.59, Y: 0.48, Z: -0.02}
	l.Points[PinkyPIP] = Point3D{X: 0.59, Y: 0.45, Z: -0.03}
	l.Points[PinkyDIP] = Point3D{X: 0.60, Y: 0.47, Z: -0.03}
	l.Points[PinkyTip] = Point3D{X: 0.60, Y: 0.50, Z: -0.02}
}

// FistLandmarks returns a closed fist: every finger folded, thumb tucked.
func FistLandmarks() HandLandmarks {
	l := HandLandmarks{Handedness: Right, Score: 0.95}

	l.Points[Wrist] = Point3D{X: 0.50, Y: 0.60, Z: 0.0}

	// Thumb tip sits inward of the IP joint
	l.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.57, Z: -0.01}
	l.Points[ThumbMCP] = Point3D{X: 0.42, Y: 0.53, Z: -0.02}
	l.Points[ThumbIP] = Point3D{X: 0.43, Y: 0.49, Z: -0.03}
	l.Points[ThumbTip] = Point3D{X: 0.46, Y: 0.48, Z: -0.03}

	curledFingers(&l)
	return l
}

// ThumbsUpLandmarks returns a thumbs up: thumb extended outward, other
// fingers folded.
func ThumbsUpLandmarks() HandLandmarks {
	l := HandLandmarks{Handedness: Right, Score: 0.95}

	l.Points[Wrist] = Point3D{X: 0.50, Y: 0.60, Z: 0.0}

	l.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.57, Z: -0.01}
	l.Points[ThumbMCP] = Point3D{X: 0.41, Y: 0.52, Z: -0.02}
	l.Points[ThumbIP] = Point3D{X: 0.39, Y: 0.46, Z: -0.03}
	l.Points[ThumbTip] = Point3D{X: 0.37, Y: 0.40, Z: -0.03}

	curledFingers(&l)
	return l
}

// OpenPalmLandmarks returns an open palm with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	l := HandLandmarks{Handedness: Right, Score: 0.95}

	l.Points[Wrist] = Point3D{X: 0.50, Y: 0.60, Z: 0.0}

	l.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.57, Z: -0.01}
	l.Points[ThumbMCP] = Point3D{X: 0.40, Y: 0.53, Z: -0.02}
	l.Points[ThumbIP] = Point3D{X: 0.36, Y: 0.50, Z: -0.02}
	l.Points[ThumbTip] = Point3D{X: 0.32, Y: 0.47, Z: -0.02}

	l.Points[IndexMCP] = Point3D{X: 0.45, Y: 0.45, Z: -0.02}
	l.Points[IndexPIP] = Point3D{X: 0.44, Y: 0.36, Z: -0.02}
	l.Points[IndexDIP] = Point3D{X: 0.44, Y: 0.31, Z: -0.02}
	l.Points[IndexTip] = Point3D{X: 0.44, Y: 0.26, Z: -0.02}

	l.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.44, Z: -0.02}
	l.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.34, Z: -0.02}
	l.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.28, Z: -0.02}
	l.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.23, Z: -0.02}

	l.Points[RingMCP] = Point3D{X: 0.55, Y: 0.45, Z: -0.02}
	l.Points[RingPIP] = Point3D{X: 0.56, Y: 0.36, Z: -0.02}
	l.Points[RingDIP] = Point3D{X: 0.56, Y: 0.31, Z: -0.02}
	l.Points[RingTip] = Point3D{X: 0.56, Y: 0.27, Z: -0.02}

	l.Points[PinkyMCP] = Point3D{X: 0.59, Y: 0.48, Z: -0.02}
	l.Points[PinkyPIP] = Point3D{X: 0.61, Y: 0.41, Z: -0.02}
	l.Points[PinkyDIP] = Point3D{X: 0.62, Y: 0.37, Z: -0.02}
	l.Points[PinkyTip] = Point3D{X: 0.62, Y: 0.33, Z: -0.02}

	return l
}

// Shifted returns a copy of h moved by (dx, dy) in normalized coordinates.
func Shifted(h HandLandmarks, dx, dy float64) HandLandmarks {
	for i := range h.Points {
		h.Points[i].X += dx
		h.Points[i].Y += dy
	}
	return h
}

// Tilted returns a copy of h with the middle finger base pushed dz away from
// the wrist in depth, as when the palm is turned away from the camera.
func Tilted(h HandLandmarks, dz float64) HandLandmarks {
	h.Points[MiddleMCP].Z = h.Points[Wrist].Z + dz
	return h
}

// Mirrored returns the horizontal mirror image of h with the opposite
// handedness label, turning a right-hand preset into a left hand.
func Mirrored(h HandLandmarks) HandLandmarks {
	for i := range h.Points {
		h.Points[i].X = 1 - h.Points[i].X
	}
	if h.Handedness == Right {
		h.Handedness = Left
	} else {
		h.Handedness = Right
	}
	return h
}
