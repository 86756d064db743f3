// Package tray provides a menu bar interface mirroring the Pomodoro timer.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/pomohand/internal/status"
)

// Tray represents the menu bar application. It only reads published
// snapshots; the session loop runs elsewhere.
type Tray struct {
	board        *status.Board
	onOpenStatus func()
	onQuit       func()
	mu           sync.RWMutex

	// Menu items stored for later updates
	menuTimer       *systray.MenuItem
	menuGesture     *systray.MenuItem
	menuLastCommand *systray.MenuItem
}

// New creates a new Tray following board.
func New(board *status.Board) *Tray {
	return &Tray{board: board}
}

// OnOpenStatus sets the callback for the status page menu item. The item is
// only shown when a callback is set.
func (t *Tray) OnOpenStatus(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpenStatus = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the menu bar application. It must be called from the main
// goroutine and blocks until Quit.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray from any goroutine.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	view := Render(t.board.Latest())
	systray.SetTitle(view.Title)
	systray.SetTooltip("pomohand: gesture controlled Pomodoro")

	t.mu.Lock()
	t.menuTimer = systray.AddMenuItem(view.Timer, "Mirrored device timer")
	t.menuTimer.Disable()
	t.menuGesture = systray.AddMenuItem(view.Gesture, "Current gesture")
	t.menuGesture.Disable()
	t.menuLastCommand = systray.AddMenuItem(view.LastCommand, "Last command sent")
	t.menuLastCommand.Disable()
	openStatus := t.onOpenStatus
	t.mu.Unlock()

	systray.AddSeparator()

	var statusClicked chan struct{}
	if openStatus != nil {
		statusClicked = systray.AddMenuItem("Open Status Page...", "Open the status page in a browser").ClickedCh
		systray.AddSeparator()
	}

	menuQuit := systray.AddMenuItem("Quit", "Quit pomohand")

	updates, cancel := t.board.Subscribe()

	// Handle menu item clicks and snapshot updates in a separate goroutine
	go func() {
		defer cancel()
		for {
			select {
			case snap := <-updates:
				t.apply(Render(snap))
			case <-statusClicked:
				openStatus()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

func (t *Tray) apply(v View) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	systray.SetTitle(v.Title)
	if t.menuTimer != nil {
		t.menuTimer.SetTitle(v.Timer)
		t.menuGesture.SetTitle(v.Gesture)
		t.menuLastCommand.SetTitle(v.LastCommand)
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}
