// Package capture provides camera capture functionality using GoCV (OpenCV).
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Default camera settings
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

var (
	// ErrCameraNotOpen is returned when trying to read from a camera that is not open.
	ErrCameraNotOpen = errors.New("camera is not open")

	// ErrNoCamera is returned by Probe when no device could be opened.
	ErrNoCamera = errors.New("no camera found")

	// ErrNoFrame is returned when the device produced no usable frame.
	ErrNoFrame = errors.New("no frame available")
)

// Options controls how frames are captured.
type Options struct {
	Width  int
	Height int

	// Flip mirrors every frame horizontally so the preview behaves like a mirror.
	Flip bool
}

// DefaultOptions returns 640x480 mirrored capture.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, Height: DefaultHeight, Flip: true}
}

// Camera defines the interface for camera capture implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	IsOpen() bool
	DeviceID() int
}

// cameraImpl manages video capture from a camera device using GoCV.
type cameraImpl struct {
	deviceID int
	opts     Options
	capture  *gocv.VideoCapture
	mu       sync.Mutex
	running  bool
}

// NewCamera creates a new Camera with the given device ID.
func NewCamera(deviceID int, opts Options) Camera {
	return &cameraImpl{
		deviceID: deviceID,
		opts:     opts,
	}
}

// Open opens the camera for capturing frames.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		if capture != nil {
			capture.Close()
		}
		return fmt.Errorf("open camera %d: %w", c.deviceID, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return fmt.Errorf("open camera %d: %w", c.deviceID, ErrCameraNotOpen)
	}

	if c.opts.Width > 0 && c.opts.Height > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(c.opts.Width))
		capture.Set(gocv.VideoCaptureFrameHeight, float64(c.opts.Height))
	}

	c.capture = capture
	c.running = true

	return nil
}

// Close closes the camera and releases resources.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false

	return err
}

// ReadFrame reads a single frame from the camera, mirrored if configured.
// The caller is responsible for closing the returned Mat.
func (c *cameraImpl) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, ErrNoFrame
	}

	if !c.opts.Flip {
		return &mat, nil
	}

	flipped := gocv.NewMat()
	gocv.Flip(mat, &flipped, 1)
	mat.Close()

	return &flipped, nil
}

// IsOpen returns true if the camera is currently open and running.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}

// DeviceID returns the device index.
func (c *cameraImpl) DeviceID() int {
	return c.deviceID
}

// openDevice is replaced in tests.
var openDevice = func(id int, opts Options) (Camera, error) {
	cam := NewCamera(id, opts)
	if err := cam.Open(); err != nil {
		return nil, err
	}
	return cam, nil
}

// Probe opens the first device in 0..maxDevices-1 that opens and delivers a
// frame. The returned camera is open.
func Probe(maxDevices int, opts Options) (Camera, error) {
	for id := 0; id < maxDevices; id++ {
		cam, err := openDevice(id, opts)
		if err != nil {
			continue
		}

		frame, err := cam.ReadFrame()
		if err != nil {
			cam.Close()
			continue
		}
		frame.Close()

		return cam, nil
	}
	return nil, fmt.Errorf("probed %d devices: %w", maxDevices, ErrNoCamera)
}

// OpenDevice opens id, or probes when id is negative.
func OpenDevice(id, maxDevices int, opts Options) (Camera, error) {
	if id < 0 {
		return Probe(maxDevices, opts)
	}
	return openDevice(id, opts)
}
