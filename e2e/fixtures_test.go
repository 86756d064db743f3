package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/pomohand/internal/app"
	"github.com/ayusman/pomohand/internal/capture"
	"github.com/ayusman/pomohand/internal/detector"
)

// sessionFixture is a scripted run loaded from testdata/sessions.
type sessionFixture struct {
	Name       string   `json:"name"`
	HoldFrames int      `json:"hold_frames"`
	Steps      []step   `json:"steps"`
	Commands   []string `json:"commands"`
	FinalPhase string   `json:"final_phase"`
}

type step struct {
	Pose   string `json:"pose"`
	Frames int    `json:"frames"`
}

func pointing() detector.HandLandmarks {
	h := detector.FistLandmarks()
	open := detector.OpenPalmLandmarks()
	for _, i := range []int{detector.IndexMCP, detector.IndexPIP, detector.IndexDIP, detector.IndexTip} {
		h.Points[i] = open.Points[i]
	}
	return h
}

var poses = map[string]func() detector.HandLandmarks{
	"fist":      detector.FistLandmarks,
	"palm":      detector.OpenPalmLandmarks,
	"thumbs_up": detector.ThumbsUpLandmarks,
	"pointing":  pointing,
	"fist_off_center": func() detector.HandLandmarks {
		return detector.Shifted(detector.FistLandmarks(), 0.35, 0)
	},
	"fist_turned_away": func() detector.HandLandmarks {
		return detector.Tilted(detector.FistLandmarks(), 0.3)
	},
}

func loadSessions(t *testing.T) map[string]*sessionFixture {
	t.Helper()

	paths, err := filepath.Glob(filepath.Join("testdata", "sessions", "*.json"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("no session fixtures found: %v", err)
	}

	sessions := make(map[string]*sessionFixture, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		var s sessionFixture
		if err := json.Unmarshal(data, &s); err != nil {
			t.Fatalf("decode %s: %v", p, err)
		}
		sessions[filepath.Base(p)] = &s
	}
	return sessions
}

// frames expands the fixture steps into per-frame hand lists.
func (s *sessionFixture) frames() ([][]detector.HandLandmarks, error) {
	var out [][]detector.HandLandmarks
	for _, st := range s.Steps {
		var hands []detector.HandLandmarks
		if st.Pose != "none" {
			pose, ok := poses[st.Pose]
			if !ok {
				return nil, fmt.Errorf("unknown pose %q", st.Pose)
			}
			hands = []detector.HandLandmarks{pose()}
		}
		for i := 0; i < st.Frames; i++ {
			out = append(out, hands)
		}
	}
	return out, nil
}

// fixtureSource plays fixture frames at 640x480 and then reports the
// camera out of frames.
type fixtureSource struct {
	frames [][]detector.HandLandmarks
	next   int
}

func (s *fixtureSource) Next() (*app.Frame, error) {
	if s.next >= len(s.frames) {
		return nil, capture.ErrNoFrame
	}
	hands := s.frames[s.next]
	s.next++
	return &app.Frame{Width: 640, Height: 480, Hands: hands}, nil
}
