package e2e

import (
	"bytes"
	"strings"
	"sync"
	"time"
)

// fakeDevice behaves like the timer firmware on the other end of the serial
// port: it answers each command line with the status line the firmware
// prints. Reads return (0, nil) when nothing is pending, like a port whose
// read timed out.
type fakeDevice struct {
	mu       sync.Mutex
	in       bytes.Buffer
	out      bytes.Buffer
	received []string
	running  bool
	closed   bool
}

var replies = map[string]string{
	"START":  "Timer STARTED (Pomodoro 10s)",
	"BREAK5": ">> BREAK Started (5s)",
}

func (d *fakeDevice) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.out.Len() == 0 {
		return 0, nil
	}
	return d.out.Read(p)
}

func (d *fakeDevice) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.in.Write(p)
	for {
		line, err := d.in.ReadString('\n')
		if err != nil {
			// keep the partial line for the next write
			d.in.Reset()
			d.in.WriteString(line)
			break
		}
		d.handle(strings.TrimSpace(line))
	}
	return len(p), nil
}

func (d *fakeDevice) handle(cmd string) {
	d.received = append(d.received, cmd)

	switch cmd {
	case "PAUSE":
		if d.running {
			d.out.WriteString("Timer PAUSED\r\n")
		}
		d.running = false
		return
	case "START", "BREAK5":
		d.running = true
	}
	if reply, ok := replies[cmd]; ok {
		d.out.WriteString(reply + "\r\n")
	}
}

func (d *fakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *fakeDevice) SetReadTimeout(time.Duration) error { return nil }

func (d *fakeDevice) Received() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.received...)
}
