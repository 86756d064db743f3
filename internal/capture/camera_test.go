package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestNewCamera(t *testing.T) {
	tests := []struct {
		name     string
		deviceID int
	}{
		{name: "default device", deviceID: 0},
		{name: "device 2", deviceID: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.deviceID, DefaultOptions())

			if cam == nil {
				t.Fatal("NewCamera returned nil")
			}
			if cam.DeviceID() != tt.deviceID {
				t.Errorf("DeviceID() = %d, want %d", cam.DeviceID(), tt.deviceID)
			}

			// Camera should not be running initially
			if cam.IsOpen() {
				t.Error("camera should not be running initially")
			}
		})
	}
}

func TestCamera_ReadFrame_NotOpened(t *testing.T) {
	cam := NewCamera(0, DefaultOptions())

	_, err := cam.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}
}

func TestCamera_Close_NotOpened(t *testing.T) {
	cam := NewCamera(0, DefaultOptions())

	// Close on not opened camera should not panic and return nil
	if err := cam.Close(); err != nil {
		t.Errorf("Close() on not opened camera should return nil, got: %v", err)
	}
}

// stubDevices makes openDevice serve mock cameras for the ids in frames.
func stubDevices(t *testing.T, frames map[int][]*gocv.Mat) *[]int {
	t.Helper()

	var tried []int
	orig := openDevice
	openDevice = func(id int, _ Options) (Camera, error) {
		tried = append(tried, id)
		f, ok := frames[id]
		if !ok {
			return nil, ErrCameraNotOpen
		}
		cam := NewMockCamera(f, false)
		cam.id = id
		cam.Open()
		return cam, nil
	}
	t.Cleanup(func() { openDevice = orig })

	return &tried
}

func TestProbe_FirstWorkingDeviceWins(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	tried := stubDevices(t, map[int][]*gocv.Mat{
		1: nil, // opens but never delivers a frame
		2: {&frame},
		3: {&frame},
	})

	cam, err := Probe(5, DefaultOptions())
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	defer cam.Close()

	if cam.DeviceID() != 2 {
		t.Errorf("DeviceID() = %d, want 2", cam.DeviceID())
	}
	if len(*tried) != 3 {
		t.Errorf("tried %v, want probing to stop at device 2", *tried)
	}
}

func TestProbe_NoDevice(t *testing.T) {
	tried := stubDevices(t, nil)

	_, err := Probe(5, DefaultOptions())
	if !errors.Is(err, ErrNoCamera) {
		t.Errorf("Probe() error = %v, want ErrNoCamera", err)
	}
	if len(*tried) != 5 {
		t.Errorf("expected devices 0..4 to be tried, got %v", *tried)
	}
}

func TestOpenDevice_ExplicitIDSkipsProbe(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	tried := stubDevices(t, map[int][]*gocv.Mat{0: {&frame}, 3: {&frame}})

	cam, err := OpenDevice(3, 5, DefaultOptions())
	if err != nil {
		t.Fatalf("OpenDevice() error = %v", err)
	}
	defer cam.Close()

	if cam.DeviceID() != 3 || len(*tried) != 1 {
		t.Errorf("opened %d after trying %v, want only device 3", cam.DeviceID(), *tried)
	}
}

func TestCamera_OpenClose_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cam := NewCamera(0, DefaultOptions())

	if err := cam.Open(); err != nil {
		t.Skipf("skipping test - camera not available: %v", err)
	}

	if !cam.IsOpen() {
		t.Error("IsOpen() should return true after Open()")
	}

	mat, err := cam.ReadFrame()
	if err != nil {
		t.Errorf("ReadFrame() failed: %v", err)
	} else {
		if mat.Empty() {
			t.Error("ReadFrame() returned empty mat")
		}
		mat.Close()
	}

	if err := cam.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if cam.IsOpen() {
		t.Error("IsOpen() should return false after Close()")
	}
}
