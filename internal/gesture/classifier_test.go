package gesture

import (
	"testing"

	"github.com/ayusman/pomohand/internal/detector"
)

// allVectors enumerates every possible 5-finger vector.
func allVectors() []FingerVector {
	vectors := make([]FingerVector, 0, 1<<NumFingers)
	for bits := 0; bits < 1<<NumFingers; bits++ {
		var v FingerVector
		for f := 0; f < NumFingers; f++ {
			if bits&(1<<f) != 0 {
				v.Up[f] = true
				v.Count++
			}
		}
		vectors = append(vectors, v)
	}
	return vectors
}

func TestClassify_NotCenteredIsAlwaysNone(t *testing.T) {
	for _, v := range allVectors() {
		for _, facing := range []bool{true, false} {
			g, desc := Classify(v, false, facing)
			if g != None {
				t.Errorf("Classify(%v, centered=false, facing=%v) = %v, want NONE", v.Up, facing, g)
			}
			if desc != "Hand not centered" {
				t.Errorf("unexpected description %q", desc)
			}
		}
	}
}

func TestClassify_Properties(t *testing.T) {
	for _, v := range allVectors() {
		for _, facing := range []bool{true, false} {
			g, _ := Classify(v, true, facing)

			switch {
			case v.Count == 0 && facing:
				if g != Start {
					t.Errorf("%v facing: got %v, want START", v.Up, g)
				}
			case v.Count == 0:
				if g != None {
					t.Errorf("%v not facing: got %v, want NONE", v.Up, g)
				}
			case v.NonThumb() == 4:
				if g != Pause {
					t.Errorf("%v: got %v, want PAUSE regardless of thumb", v.Up, g)
				}
			case v.Count == 1 && v.Up[Thumb]:
				if g != Break5 {
					t.Errorf("%v: got %v, want BREAK5", v.Up, g)
				}
			default:
				if g != None {
					t.Errorf("%v: got %v, want NONE", v.Up, g)
				}
			}
		}
	}
}

func TestClassify_Descriptions(t *testing.T) {
	tests := []struct {
		name     string
		up       [NumFingers]bool
		facing   bool
		want     Gesture
		wantDesc string
	}{
		{name: "fist", facing: true, want: Start, wantDesc: "Fist: Start Pomodoro"},
		{name: "fist turned away", facing: false, want: None, wantDesc: "0 fingers"},
		{name: "palm", up: [NumFingers]bool{true, true, true, true, true}, want: Pause, wantDesc: "Palm: Pause Timer"},
		{name: "four fingers no thumb", up: [NumFingers]bool{false, true, true, true, true}, want: Pause, wantDesc: "Palm: Pause Timer"},
		{name: "thumbs up", up: [NumFingers]bool{true, false, false, false, false}, want: Break5, wantDesc: "Thumbs Up: Start Break"},
		{name: "pointing", up: [NumFingers]bool{false, true, false, false, false}, want: None, wantDesc: "1 fingers"},
		{name: "peace", up: [NumFingers]bool{false, true, true, false, false}, want: None, wantDesc: "2 fingers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := FingerVector{Up: tt.up}
			for _, up := range tt.up {
				if up {
					v.Count++
				}
			}

			g, desc := Classify(v, true, tt.facing)
			if g != tt.want {
				t.Errorf("gesture = %v, want %v", g, tt.want)
			}
			if desc != tt.wantDesc {
				t.Errorf("description = %q, want %q", desc, tt.wantDesc)
			}
		})
	}
}

func TestGesture_Token(t *testing.T) {
	tests := []struct {
		g     Gesture
		token string
		str   string
	}{
		{None, "", "NONE"},
		{Start, "START", "START"},
		{Pause, "PAUSE", "PAUSE"},
		{Break5, "BREAK5", "BREAK5"},
	}

	for _, tt := range tests {
		if got := tt.g.Token(); got != tt.token {
			t.Errorf("Token() = %q, want %q", got, tt.token)
		}
		if got := tt.g.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
}

func TestEvaluate_Presets(t *testing.T) {
	gate := DefaultGate()

	tests := []struct {
		name string
		hand detector.HandLandmarks
		want Gesture
	}{
		{name: "fist", hand: detector.FistLandmarks(), want: Start},
		{name: "open palm", hand: detector.OpenPalmLandmarks(), want: Pause},
		{name: "thumbs up", hand: detector.ThumbsUpLandmarks(), want: Break5},
		{name: "left thumbs up", hand: detector.Mirrored(detector.ThumbsUpLandmarks()), want: Break5},
		{name: "fist off to the side", hand: detector.Shifted(detector.FistLandmarks(), 0.35, 0), want: None},
		{name: "fist turned away", hand: detector.Tilted(detector.FistLandmarks(), 0.3), want: None},
		{name: "tilted palm still pauses", hand: detector.Tilted(detector.OpenPalmLandmarks(), 0.3), want: Pause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(&tt.hand, 640, 480, gate)
			if r.Gesture != tt.want {
				t.Errorf("Evaluate() gesture = %v (%q), want %v", r.Gesture, r.Description, tt.want)
			}
		})
	}
}
