// Package link carries text lines to and from the Pomodoro device.
package link

import "errors"

// ErrUnavailable is returned by writes when no device is connected.
var ErrUnavailable = errors.New("device link unavailable")

// Channel is a duplex, line-oriented text channel to the device.
type Channel interface {
	// ReadLine returns the next complete inbound line. It waits at most the
	// channel's read timeout and reports ok=false when no line is available.
	ReadLine() (line string, ok bool)

	// WriteLine sends line followed by a newline. Writes are best effort;
	// nothing is awaited from the device.
	WriteLine(line string) error

	// Close releases the underlying port.
	Close() error
}

// Offline is the Channel used when no device could be opened. Reads never
// produce a line and writes fail with ErrUnavailable.
type Offline struct{}

// ReadLine never returns a line.
func (Offline) ReadLine() (string, bool) { return "", false }

// WriteLine always fails with ErrUnavailable.
func (Offline) WriteLine(string) error { return ErrUnavailable }

// Close is a no-op.
func (Offline) Close() error { return nil }
