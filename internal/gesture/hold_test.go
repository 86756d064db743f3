package gesture

import "testing"

// run feeds gestures through a fresh hold state and returns the frames
// (1-based) on which a dispatch fired.
func run(seq []Gesture, threshold int) []int {
	var s HoldState
	var fired []int
	for i, g := range seq {
		var fire bool
		s, fire = s.Step(g, threshold)
		if fire {
			fired = append(fired, i+1)
		}
	}
	return fired
}

func repeat(g Gesture, n int) []Gesture {
	seq := make([]Gesture, n)
	for i := range seq {
		seq[i] = g
	}
	return seq
}

func TestHoldState_FiresOncePerEpisode(t *testing.T) {
	fired := run(repeat(Start, 30), 15)
	if len(fired) != 1 || fired[0] != 15 {
		t.Errorf("expected exactly one dispatch on frame 15, got %v", fired)
	}
}

func TestHoldState_NoneResetsAccumulation(t *testing.T) {
	seq := append(repeat(Pause, 9), None)
	seq = append(seq, repeat(Pause, 14)...)

	if fired := run(seq, 15); len(fired) != 0 {
		t.Errorf("expected no dispatch after interruption at frame 10, got %v", fired)
	}

	var s HoldState
	for _, g := range seq[:11] {
		s, _ = s.Step(g, 15)
	}
	if s.Frames != 1 {
		t.Errorf("expected accumulation to restart from 1, got %d", s.Frames)
	}
}

func TestHoldState_GestureChangeRestartsEpisode(t *testing.T) {
	seq := append(repeat(Start, 10), repeat(Break5, 15)...)

	fired := run(seq, 15)
	if len(fired) != 1 || fired[0] != 25 {
		t.Errorf("expected one dispatch on frame 25, got %v", fired)
	}
}

func TestHoldState_ReleaseAndHoldAgainFiresAgain(t *testing.T) {
	seq := append(repeat(Start, 15), None)
	seq = append(seq, repeat(Start, 15)...)

	fired := run(seq, 15)
	if len(fired) != 2 || fired[0] != 15 || fired[1] != 31 {
		t.Errorf("expected dispatches on frames 15 and 31, got %v", fired)
	}
}

func TestHoldState_FirstFrameNeverFires(t *testing.T) {
	var s HoldState
	s, fire := s.Step(Start, 1)
	if fire {
		t.Error("first frame of an episode must not fire")
	}
	if s != (HoldState{Current: Start, Frames: 1}) {
		t.Errorf("unexpected state %+v", s)
	}

	if _, fire = s.Step(Start, 1); !fire {
		t.Error("expected dispatch on the second frame with threshold 1")
	}
}

func TestHoldState_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		prev     HoldState
		g        Gesture
		want     HoldState
		wantFire bool
	}{
		{
			name: "none resets",
			prev: HoldState{Current: Pause, Frames: 7},
			g:    None,
			want: HoldState{},
		},
		{
			name: "none resets after dispatch",
			prev: HoldState{Current: Pause, Frames: 15, Dispatched: true},
			g:    None,
			want: HoldState{},
		},
		{
			name: "accumulates",
			prev: HoldState{Current: Pause, Frames: 7},
			g:    Pause,
			want: HoldState{Current: Pause, Frames: 8},
		},
		{
			name:     "reaches threshold",
			prev:     HoldState{Current: Pause, Frames: 14},
			g:        Pause,
			want:     HoldState{Current: Pause, Frames: 15, Dispatched: true},
			wantFire: true,
		},
		{
			name: "held after dispatch",
			prev: HoldState{Current: Pause, Frames: 15, Dispatched: true},
			g:    Pause,
			want: HoldState{Current: Pause, Frames: 15, Dispatched: true},
		},
		{
			name: "new gesture",
			prev: HoldState{Current: Pause, Frames: 15, Dispatched: true},
			g:    Start,
			want: HoldState{Current: Start, Frames: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fire := tt.prev.Step(tt.g, 15)
			if got != tt.want {
				t.Errorf("Step() state = %+v, want %+v", got, tt.want)
			}
			if fire != tt.wantFire {
				t.Errorf("Step() fire = %v, want %v", fire, tt.wantFire)
			}
		})
	}
}

func TestHoldState_Progress(t *testing.T) {
	palm := Result{Gesture: Pause, Description: "Palm: Pause Timer"}

	tests := []struct {
		name  string
		state HoldState
		r     Result
		want  string
	}{
		{
			name:  "no gesture shows description",
			state: HoldState{},
			r:     Result{Gesture: None, Description: "Hand not centered"},
			want:  "Hand not centered",
		},
		{
			name:  "accumulating",
			state: HoldState{Current: Pause, Frames: 4},
			r:     palm,
			want:  "Hold... (4/15)",
		},
		{
			name:  "dispatched",
			state: HoldState{Current: Pause, Frames: 15, Dispatched: true},
			r:     palm,
			want:  "✓ Palm: Pause Timer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Progress(tt.r, 15); got != tt.want {
				t.Errorf("Progress() = %q, want %q", got, tt.want)
			}
		})
	}
}
