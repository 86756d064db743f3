package app

import (
	"github.com/ayusman/pomohand/internal/detector"
	"github.com/ayusman/pomohand/internal/gesture"
	"github.com/ayusman/pomohand/internal/overlay"
	"github.com/ayusman/pomohand/internal/timer"
)

// View is what one loop iteration shows the user.
type View struct {
	// Hand is the evaluated hand, nil when none was detected.
	Hand     *detector.HandLandmarks
	Result   gesture.Result
	Progress string
	Timer    timer.Display
}

// Renderer presents a frame and its view. It reports whether the user asked
// to quit.
type Renderer interface {
	Render(f *Frame, v View) (quit bool)
}

// WindowRenderer draws the HUD on each frame and shows it in a window.
type WindowRenderer struct {
	hud overlay.HUD
	win *overlay.Window
}

// NewWindowRenderer opens the preview window. margin sizes the drawn
// gesture zone.
func NewWindowRenderer(margin float64) *WindowRenderer {
	return &WindowRenderer{
		hud: overlay.HUD{Margin: margin},
		win: overlay.NewWindow(overlay.WindowTitle),
	}
}

// Render implements Renderer. Synthetic frames without an image are skipped.
func (r *WindowRenderer) Render(f *Frame, v View) bool {
	if f.Image == nil {
		return false
	}

	r.hud.Draw(f.Image, overlay.Scene{
		Hand:     v.Hand,
		Centered: v.Result.Centered,
		Message:  v.Progress,
		Timer:    v.Timer,
	})
	return r.win.Show(*f.Image)
}

// Close destroys the window.
func (r *WindowRenderer) Close() error {
	return r.win.Close()
}
