package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ayusman/pomohand/internal/timer"
)

// PrintBanner writes the gesture cheat sheet shown at startup.
func PrintBanner(w io.Writer, holdFrames int, d timer.Durations, window bool) {
	rule := strings.Repeat("=", 50)

	fmt.Fprintf(w, "\n%s\nPOMODORO HAND GESTURE CONTROLS\n%s\n", rule, rule)
	fmt.Fprintf(w, "FIST: Start %s Pomodoro\n", d.Pomodoro)
	fmt.Fprintln(w, "PALM (4 or 5 fingers): Pause timer")
	fmt.Fprintf(w, "THUMBS UP: Start %s break\n", d.Break)
	fmt.Fprintf(w, "\nHold gesture in CENTER for %d frames\n", holdFrames)
	if window {
		fmt.Fprintln(w, "Press 'q' to quit")
	} else {
		fmt.Fprintln(w, "Press Ctrl+C to quit")
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}

// PrintGoodbye writes the closing line for a session that ended with err,
// the result of Session.Run.
func PrintGoodbye(w io.Writer, err error) {
	if errors.Is(err, ErrSourceEnded) {
		fmt.Fprintln(w, "\nCamera feed ended, session over.")
	} else {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "Goodbye!")
}

// ExitError maps a Session.Run result to the process outcome. A camera
// that stops delivering frames is a normal end of session.
func ExitError(err error) error {
	if errors.Is(err, ErrSourceEnded) {
		return nil
	}
	return err
}
