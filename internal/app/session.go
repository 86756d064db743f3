// Package app runs the gesture controlled Pomodoro session loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayusman/pomohand/internal/detector"
	"github.com/ayusman/pomohand/internal/dispatch"
	"github.com/ayusman/pomohand/internal/gesture"
	"github.com/ayusman/pomohand/internal/link"
	"github.com/ayusman/pomohand/internal/logger"
	"github.com/ayusman/pomohand/internal/metrics"
	"github.com/ayusman/pomohand/internal/status"
	"github.com/ayusman/pomohand/internal/timer"
)

// ErrSourceEnded wraps every frame source failure. The camera running dry
// ends a session the same way quitting does.
var ErrSourceEnded = errors.New("video source ended")

// Config holds everything a Session needs. Renderer, Board, Metrics and Now
// are optional.
type Config struct {
	SessionID  string
	HoldFrames int
	Gate       gesture.Gate
	Durations  timer.Durations

	Source   FrameSource
	Link     link.Channel
	Renderer Renderer
	Board    *status.Board
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

// Session owns the hold state and the timer mirror and advances both once
// per frame. It is not safe for concurrent use; peripherals read the
// snapshots it publishes instead.
type Session struct {
	config     Config
	dispatcher *dispatch.Dispatcher
	log        zerolog.Logger
	deviceLog  zerolog.Logger

	hold   gesture.HoldState
	mirror timer.Mirror
	frames uint64
}

// NewSession creates a Session. A nil Link runs offline.
func NewSession(config Config) *Session {
	if config.Link == nil {
		config.Link = link.Offline{}
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.HoldFrames <= 0 {
		config.HoldFrames = gesture.DefaultHoldFrames
	}

	log := *logger.Named("session")
	if config.SessionID != "" {
		log = log.With().Str("session", config.SessionID).Logger()
	}

	return &Session{
		config:     config,
		dispatcher: dispatch.New(config.Link, config.Metrics),
		log:        log,
		deviceLog:  *logger.Named("mirror"),
	}
}

// Run loops until ctx is cancelled, the renderer reports quit, or the frame
// source fails. Only the last case returns an error, wrapping ErrSourceEnded.
func (s *Session) Run(ctx context.Context) error {
	s.log.Info().
		Int("hold_frames", s.config.HoldFrames).
		Dur("pomodoro", s.config.Durations.Pomodoro).
		Dur("break", s.config.Durations.Break).
		Msg("session started")

	for {
		if ctx.Err() != nil {
			s.log.Info().Uint64("frames", s.frames).Msg("session cancelled")
			return nil
		}

		quit, err := s.Step()
		if err != nil {
			s.log.Info().Err(err).Uint64("frames", s.frames).Msg("video source ended")
			return err
		}
		if quit {
			s.log.Info().Uint64("frames", s.frames).Msg("quit requested")
			return nil
		}
	}
}

// Step runs one loop iteration: read a frame, run the gesture pipeline,
// do one bounded inbound read, update the mirror and render.
func (s *Session) Step() (quit bool, err error) {
	frame, err := s.config.Source.Next()
	if err != nil {
		return false, fmt.Errorf("read frame: %w: %w", ErrSourceEnded, err)
	}
	if frame == nil {
		return false, fmt.Errorf("read frame: %w: source returned no frame", ErrSourceEnded)
	}
	defer frame.Close()

	now := s.config.Now()
	s.frames++

	var (
		hand   *detector.HandLandmarks
		result gesture.Result
	)
	if len(frame.Hands) > 0 {
		hand = &frame.Hands[0]
		result = gesture.Evaluate(hand, frame.Width, frame.Height, s.config.Gate)
	}

	var fire bool
	s.hold, fire = s.hold.Step(result.Gesture, s.config.HoldFrames)

	progress := gesture.NoHandMessage
	if hand != nil {
		progress = s.hold.Progress(result, s.config.HoldFrames)
	}

	if fire {
		s.log.Info().Str("gesture", result.Gesture.String()).Str("description", result.Description).Msg("gesture confirmed")
		s.dispatcher.Dispatch(result.Gesture)
	}

	if line, ok := s.config.Link.ReadLine(); ok {
		s.applyLine(line, now)
	}

	display := s.mirror.Display(now)

	s.record(hand, result)
	s.publish(result, progress, display, now)

	if s.config.Renderer == nil {
		return false, nil
	}
	return s.config.Renderer.Render(frame, View{
		Hand:     hand,
		Result:   result,
		Progress: progress,
		Timer:    display,
	}), nil
}

// applyLine folds one device status line into the mirror.
func (s *Session) applyLine(line string, now time.Time) {
	s.deviceLog.Info().Str("line", line).Msg("device line")

	next, ev := s.mirror.Apply(line, now, s.config.Durations)

	switch ev {
	case timer.Unmatched:
		s.deviceLog.Debug().Str("line", line).Msg("unmatched device line")
	case timer.PauseIgnored:
		s.deviceLog.Debug().Str("phase", s.mirror.Phase.String()).Msg("pause ignored, no countdown running")
	default:
		s.deviceLog.Info().
			Str("event", ev.String()).
			Str("from", s.mirror.Phase.String()).
			Str("to", next.Phase.String()).
			Msg("timer state")
	}

	if s.config.Metrics != nil {
		s.config.Metrics.DeviceLine(ev.String())
	}
	s.mirror = next
}

func (s *Session) record(hand *detector.HandLandmarks, r gesture.Result) {
	m := s.config.Metrics
	if m == nil {
		return
	}

	m.Frames.Add(1)
	if hand != nil {
		m.HandsSeen.Add(1)
		if r.Centered {
			m.CenteredHit.Add(1)
		}
	}
	m.TimerPhase.Store(int64(s.mirror.Phase))
}

func (s *Session) publish(r gesture.Result, progress string, d timer.Display, now time.Time) {
	if s.config.Board == nil {
		return
	}

	_, offline := s.config.Link.(link.Offline)
	s.config.Board.Publish(status.Snapshot{
		SessionID:   s.config.SessionID,
		Frame:       s.frames,
		Gesture:     r.Gesture.String(),
		HoldFrames:  s.hold.Frames,
		Progress:    progress,
		Timer:       d.Text,
		TimerColor:  d.Color.String(),
		Phase:       s.mirror.Phase.String(),
		LastCommand: s.dispatcher.Last(),
		Connected:   !offline,
		UpdatedAt:   now,
	})
}

// Mirror returns the current timer mirror.
func (s *Session) Mirror() timer.Mirror {
	return s.mirror
}

// Hold returns the current hold state.
func (s *Session) Hold() gesture.HoldState {
	return s.hold
}

// Frames returns the number of frames processed.
func (s *Session) Frames() uint64 {
	return s.frames
}
