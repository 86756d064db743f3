package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera is a Camera that replays a fixed list of frames. Each read
// returns a clone the caller must close.
type MockCamera struct {
	mu     sync.Mutex
	id     int
	frames []*gocv.Mat
	next   int
	loop   bool
	open   bool
	err    error
	reads  int
}

// NewMockCamera replays frames once, or forever when loop is set.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{frames: frames, loop: loop}
}

// SetError makes every following read fail with err until cleared with nil.
func (c *MockCamera) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Reads returns how many frames were delivered since the last Open.
func (c *MockCamera) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// Open rewinds playback.
func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.next = 0
	c.reads = 0
	return nil
}

// Close stops playback. The replayed frames stay owned by the caller.
func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}

func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case !c.open:
		return nil, fmt.Errorf("mock camera %d: %w", c.id, ErrCameraNotOpen)
	case c.err != nil:
		return nil, fmt.Errorf("mock camera %d: %w", c.id, c.err)
	}

	if c.next == len(c.frames) {
		if !c.loop || len(c.frames) == 0 {
			return nil, fmt.Errorf("mock camera %d after %d frames: %w", c.id, c.reads, ErrNoFrame)
		}
		c.next = 0
	}

	frame := c.frames[c.next].Clone()
	c.next++
	c.reads++
	return &frame, nil
}

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *MockCamera) DeviceID() int { return c.id }
