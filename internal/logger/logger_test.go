package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"silent", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNamed_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Writer: &buf})
	t.Cleanup(func() { Init(Options{Level: "info", Format: "console"}) })

	Named("mirror").Info().Str("line", "Timer PAUSED").Msg("device line")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "mirror" {
		t.Errorf("expected component mirror, got %v", entry["component"])
	}
	if entry["message"] != "device line" {
		t.Errorf("expected message 'device line', got %v", entry["message"])
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "warn", Format: "json", Writer: &buf})
	t.Cleanup(func() { Init(Options{Level: "info", Format: "console"}) })

	Get().Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}

	Get().Warn().Msg("shown")
	if buf.Len() == 0 {
		t.Error("expected warn to be written")
	}
}
