package tray

import (
	"github.com/ayusman/pomohand/internal/status"
	"github.com/ayusman/pomohand/internal/timer"
)

// View is the text shown in the menu bar for one snapshot.
type View struct {
	Title       string
	Timer       string
	Gesture     string
	LastCommand string
}

var phaseIcons = map[string]string{
	timer.Running.String(): "🍅",
	timer.Paused.String():  "⏸",
	timer.Break.String():   "☕",
}

// Render builds the menu bar text for s.
func Render(s status.Snapshot) View {
	text := s.Timer
	if text == "" {
		text = timer.ReadyText
	}

	title := text
	if icon, ok := phaseIcons[s.Phase]; ok {
		title = icon + " " + text
	}

	last := "Last: none"
	if s.LastCommand != "" {
		last = "Last: " + s.LastCommand
	}

	progress := s.Progress
	if progress == "" {
		progress = "No hand"
	}

	return View{
		Title:       title,
		Timer:       "Timer: " + text,
		Gesture:     "Gesture: " + progress,
		LastCommand: last,
	}
}
