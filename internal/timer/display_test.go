package timer

import (
	"testing"
	"time"
)

func TestMirror_Display(t *testing.T) {
	tests := []struct {
		name string
		m    Mirror
		now  time.Time
		want Display
	}{
		{
			name: "stopped",
			m:    Mirror{},
			now:  at(0),
			want: Display{Text: "Ready", Color: Neutral},
		},
		{
			name: "running",
			m:    Mirror{Phase: Running, Anchor: at(0), Duration: 10 * time.Second},
			now:  at(2.5),
			want: Display{Text: "Focus 00:07", Color: RunningGreen},
		},
		{
			name: "break",
			m:    Mirror{Phase: Break, Anchor: at(0), Duration: 5 * time.Second},
			now:  at(1),
			want: Display{Text: "Break 00:04", Color: BreakCyan},
		},
		{
			name: "long pomodoro",
			m:    Mirror{Phase: Running, Anchor: at(0), Duration: 25 * time.Minute},
			now:  at(61),
			want: Display{Text: "Focus 23:59", Color: RunningGreen},
		},
		{
			name: "running at expiry",
			m:    Mirror{Phase: Running, Anchor: at(0), Duration: 10 * time.Second},
			now:  at(10),
			want: Display{Text: "Focus 00:00", Color: RunningGreen},
		},
		{
			name: "running past expiry never goes negative",
			m:    Mirror{Phase: Running, Anchor: at(0), Duration: 10 * time.Second},
			now:  at(42),
			want: Display{Text: "Focus 00:00", Color: RunningGreen},
		},
		{
			name: "paused past duration",
			m:    Mirror{Phase: Paused, Anchor: at(0), Duration: 5 * time.Second, PausedElapsed: 9 * time.Second},
			now:  at(9),
			want: Display{Text: "PAUSED 00:00", Color: PausedOrange},
		},
		{
			name: "running without anchor falls back",
			m:    Mirror{Phase: Running, Duration: 10 * time.Second},
			now:  at(1),
			want: Display{Text: "Ready", Color: Neutral},
		},
		{
			name: "break without anchor falls back",
			m:    Mirror{Phase: Break, Duration: 5 * time.Second},
			now:  at(1),
			want: Display{Text: "Ready", Color: Neutral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Display(tt.now); got != tt.want {
				t.Errorf("Display() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-3 * time.Second, "00:00"},
		{999 * time.Millisecond, "00:00"},
		{7 * time.Second, "00:07"},
		{90 * time.Second, "01:30"},
		{25 * time.Minute, "25:00"},
	}

	for _, tt := range tests {
		if got := Clock(tt.d); got != tt.want {
			t.Errorf("Clock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestColor_String(t *testing.T) {
	for c, want := range map[Color]string{
		Neutral:      "neutral",
		PausedOrange: "paused-orange",
		RunningGreen: "running-green",
		BreakCyan:    "break-cyan",
	} {
		if got := c.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", c, got, want)
		}
	}
}
