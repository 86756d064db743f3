package app

import (
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/ayusman/pomohand/internal/capture"
	"github.com/ayusman/pomohand/internal/detector"
	"github.com/ayusman/pomohand/internal/logger"
)

// Frame is one captured frame and the hands detected in it.
type Frame struct {
	// Image is nil for synthetic frames.
	Image  *gocv.Mat
	Width  int
	Height int
	Hands  []detector.HandLandmarks
}

// Close releases the frame image.
func (f *Frame) Close() {
	if f.Image != nil {
		f.Image.Close()
		f.Image = nil
	}
}

// FrameSource produces frames for the session. An error ends the session.
type FrameSource interface {
	Next() (*Frame, error)
}

// CameraSource reads frames from a camera and runs hand detection on them.
type CameraSource struct {
	camera   capture.Camera
	detector detector.Detector
	log      zerolog.Logger
}

// NewCameraSource creates a source over an open camera.
func NewCameraSource(cam capture.Camera, det detector.Detector) *CameraSource {
	return &CameraSource{
		camera:   cam,
		detector: det,
		log:      *logger.Named("capture"),
	}
}

// Next reads and analyzes one frame. A detector failure yields a frame
// without hands rather than an error.
func (s *CameraSource) Next() (*Frame, error) {
	mat, err := s.camera.ReadFrame()
	if err != nil {
		return nil, err
	}

	hands, err := s.detector.Detect(mat)
	if err != nil {
		s.log.Warn().Err(err).Msg("hand detection failed")
		hands = nil
	}

	return &Frame{
		Image:  mat,
		Width:  mat.Cols(),
		Height: mat.Rows(),
		Hands:  hands,
	}, nil
}
