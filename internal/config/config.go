// Package config holds pomohand's tunables and runtime options and layers
// them from defaults, persisted settings, the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ayusman/pomohand/internal/gesture"
	"github.com/ayusman/pomohand/internal/link"
	"github.com/ayusman/pomohand/internal/logger"
	"github.com/ayusman/pomohand/internal/timer"
)

// Defaults that are not owned by another package.
const (
	DefaultSerialPort = "/dev/cu.usbmodem14201"
	DefaultStatusAddr = "127.0.0.1:8420"
	DefaultMaxProbe   = 5
	EnvPrefix         = "POMO_"
)

// Config carries every tunable plus runtime options. The key tag is the
// name used by persisted settings and, upper-cased, by the environment.
type Config struct {
	HoldFrames      int           `key:"hold_frames" validate:"min=1"`
	Pomodoro        time.Duration `key:"pomodoro" validate:"gt=0"`
	Break           time.Duration `key:"break" validate:"gt=0"`
	CenterMargin    float64       `key:"center_margin" validate:"gte=0,lt=0.5"`
	FacingThreshold float64       `key:"facing_threshold" validate:"gte=0"`

	// CameraID -1 probes devices 0..MaxProbe-1
	CameraID int  `key:"camera" validate:"gte=-1"`
	MaxProbe int  `key:"max_probe" validate:"min=1"`
	Flip     bool `key:"flip"`

	SerialPort  string        `key:"serial_port"`
	BaudRate    int           `key:"baud_rate" validate:"gt=0"`
	ReadTimeout time.Duration `key:"read_timeout" validate:"gt=0"`
	Settle      time.Duration `key:"settle" validate:"gte=0"`

	Window     bool   `key:"window"`
	Tray       bool   `key:"tray"`
	StatusAddr string `key:"status_addr" validate:"omitempty,hostname_port"`
	DBPath     string `key:"db_path" validate:"required"`

	LogLevel  string `key:"log_level" validate:"oneof=trace debug info warn error disabled"`
	LogFormat string `key:"log_format" validate:"oneof=console json"`
}

// Default returns the built-in configuration.
func Default() Config {
	d := timer.DefaultDurations()
	g := gesture.DefaultGate()

	return Config{
		HoldFrames:      gesture.DefaultHoldFrames,
		Pomodoro:        d.Pomodoro,
		Break:           d.Break,
		CenterMargin:    g.CenterMargin,
		FacingThreshold: g.FacingThreshold,
		CameraID:        -1,
		MaxProbe:        DefaultMaxProbe,
		Flip:            true,
		SerialPort:      DefaultSerialPort,
		BaudRate:        link.DefaultBaudRate,
		ReadTimeout:     link.DefaultReadTimeout,
		Settle:          link.DefaultSettle,
		Window:          true,
		StatusAddr:      DefaultStatusAddr,
		DBPath:          DefaultDBPath(),
		LogLevel:        "info",
		LogFormat:       "console",
	}
}

// DefaultDBPath returns ~/.pomohand/pomohand.db, or a file in the working
// directory when the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pomohand.db"
	}
	return filepath.Join(home, ".pomohand", "pomohand.db")
}

// Gate returns the spatial gate thresholds.
func (c Config) Gate() gesture.Gate {
	return gesture.Gate{CenterMargin: c.CenterMargin, FacingThreshold: c.FacingThreshold}
}

// Durations returns the mirrored timer durations.
func (c Config) Durations() timer.Durations {
	return timer.Durations{Pomodoro: c.Pomodoro, Break: c.Break}
}

// Logging returns the root logger options.
func (c Config) Logging() logger.Options {
	return logger.Options{Level: c.LogLevel, Format: c.LogFormat}
}

// Serial returns the serial link configuration.
func (c Config) Serial() link.SerialConfig {
	return link.SerialConfig{
		Port:        c.SerialPort,
		BaudRate:    c.BaudRate,
		ReadTimeout: c.ReadTimeout,
		Settle:      c.Settle,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report settings keys rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if k := fld.Tag.Get("key"); k != "" {
			return k
		}
		return fld.Name
	})
	return v
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s (got %v)", fe.Field(), fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// RegisterFlags binds command-line flags to c. Flag defaults are the
// current values so unset flags keep whatever earlier layers produced.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.HoldFrames, "hold-frames", c.HoldFrames, "consecutive frames a gesture must be held")
	fs.DurationVar(&c.Pomodoro, "pomodoro", c.Pomodoro, "Pomodoro duration mirrored locally")
	fs.DurationVar(&c.Break, "break", c.Break, "break duration mirrored locally")
	fs.Float64Var(&c.CenterMargin, "center-margin", c.CenterMargin, "gesture zone margin as a fraction of the frame")
	fs.Float64Var(&c.FacingThreshold, "facing-threshold", c.FacingThreshold, "max wrist to middle knuckle depth difference")
	fs.IntVar(&c.CameraID, "camera", c.CameraID, "camera device id (-1 probes)")
	fs.BoolVar(&c.Flip, "flip", c.Flip, "mirror frames horizontally")
	fs.StringVar(&c.SerialPort, "port", c.SerialPort, "serial port of the timer device (empty runs offline)")
	fs.IntVar(&c.BaudRate, "baud", c.BaudRate, "serial baud rate")
	fs.BoolVar(&c.Window, "window", c.Window, "show the camera window")
	fs.BoolVar(&c.Tray, "tray", c.Tray, "show a menu bar item (implies no window)")
	fs.StringVar(&c.StatusAddr, "status-addr", c.StatusAddr, "status server address (empty disables)")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "settings database path")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "trace, debug, info, warn, error or disabled")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "console or json")
}
