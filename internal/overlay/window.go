package overlay

import "gocv.io/x/gocv"

// Window is the preview window. It must be used from the main goroutine.
type Window struct {
	win *gocv.Window
}

// NewWindow opens a preview window.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Show displays img and polls the keyboard once. It reports whether 'q'
// was pressed.
func (w *Window) Show(img gocv.Mat) bool {
	w.win.IMShow(img)
	return w.win.WaitKey(1)&0xFF == 'q'
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}
