package link

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"go.bug.st/serial"

	"github.com/ayusman/pomohand/internal/logger"
)

// Serial defaults matching the device firmware.
const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = 10 * time.Millisecond
	DefaultSettle      = 2 * time.Second

	// maxPending bounds buffered bytes without a newline.
	maxPending = 4096
)

// SerialConfig describes how to open the device port.
type SerialConfig struct {
	Port        string
	BaudRate    int
	ReadTimeout time.Duration
	// Settle is how long to wait after opening; the board resets when the
	// port is opened and ignores input until it has booted.
	Settle time.Duration
}

// Port is the subset of serial.Port the link needs.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// Serial is a Channel over a serial port.
type Serial struct {
	port    Port
	name    string
	chunk   []byte
	pending []byte
	// failing is set after a read error has been logged.
	failing bool
	log     *logger.Logger
}

// OpenSerial opens and configures the device port.
func OpenSerial(cfg SerialConfig) (*Serial, error) {
	if cfg.Port == "" {
		return nil, fmt.Errorf("open serial port: %w", ErrUnavailable)
	}

	p, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Port, err)
	}

	if err := p.SetReadTimeout(cfg.ReadTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", cfg.Port, err)
	}

	if cfg.Settle > 0 {
		time.Sleep(cfg.Settle)
	}

	return NewSerial(p, cfg.Port), nil
}

// Open returns a serial Channel for cfg, or Offline when the port cannot be
// opened. A missing device is not fatal: gestures keep working locally.
func Open(cfg SerialConfig) Channel {
	log := logger.Named("link")

	s, err := OpenSerial(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("device not connected, running without timer hardware")
		return Offline{}
	}

	log.Info().Str("port", cfg.Port).Int("baud", cfg.BaudRate).Msg("device connected")
	return s
}

// NewSerial wraps an already opened port.
func NewSerial(p Port, name string) *Serial {
	return &Serial{
		port:  p,
		name:  name,
		chunk: make([]byte, 256),
		log:   logger.Named("link"),
	}
}

// ReadLine performs at most one bounded read and returns the next complete
// line, trimmed of surrounding whitespace. Blank lines are skipped. A line
// that is not valid UTF-8 is dropped and reported as no line.
func (s *Serial) ReadLine() (string, bool) {
	if line, ok, done := s.nextLine(); done {
		return line, ok
	}

	n, err := s.port.Read(s.chunk)
	if err != nil {
		if !s.failing {
			s.log.Warn().Err(err).Str("port", s.name).Msg("serial read failed, suppressing until it recovers")
			s.failing = true
		}
		return "", false
	}
	if s.failing {
		s.log.Info().Str("port", s.name).Msg("serial read recovered")
		s.failing = false
	}
	s.pending = append(s.pending, s.chunk[:n]...)

	line, ok, _ := s.nextLine()
	return line, ok
}

// nextLine pops one line from the pending buffer. done is false when no
// complete line is buffered.
func (s *Serial) nextLine() (line string, ok bool, done bool) {
	for {
		i := bytes.IndexByte(s.pending, '\n')
		if i < 0 {
			if len(s.pending) > maxPending {
				s.log.Warn().Int("bytes", len(s.pending)).Msg("discarding unterminated input")
				s.pending = s.pending[:0]
			}
			return "", false, false
		}

		raw := s.pending[:i]
		s.pending = s.pending[i+1:]

		if !utf8.Valid(raw) {
			s.log.Warn().Hex("raw", raw).Msg("undecodable device line")
			return "", false, true
		}

		if line := strings.TrimSpace(string(raw)); line != "" {
			return line, true, true
		}
	}
}

// WriteLine writes line and a trailing newline to the port.
func (s *Serial) WriteLine(line string) error {
	if _, err := s.port.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("write to %s: %w", s.name, err)
	}
	return nil
}

// Close closes the port.
func (s *Serial) Close() error {
	return s.port.Close()
}

// Ports lists the serial ports present on this machine.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
