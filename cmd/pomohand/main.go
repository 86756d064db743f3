package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ayusman/pomohand/internal/app"
	"github.com/ayusman/pomohand/internal/capture"
	"github.com/ayusman/pomohand/internal/config"
	"github.com/ayusman/pomohand/internal/detector"
	"github.com/ayusman/pomohand/internal/link"
	"github.com/ayusman/pomohand/internal/logger"
	"github.com/ayusman/pomohand/internal/metrics"
	"github.com/ayusman/pomohand/internal/server"
	"github.com/ayusman/pomohand/internal/status"
	"github.com/ayusman/pomohand/internal/store"
	"github.com/ayusman/pomohand/internal/tray"
)

const usage = `pomohand - gesture controlled Pomodoro timer

Usage:
  pomohand [run] [flags]        run a session (see "pomohand run -h")
  pomohand ports                list serial ports
  pomohand config list          show effective settings
  pomohand config set KEY VALUE persist a setting
  pomohand config unset KEY     remove a persisted setting
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "pomohand:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	// A missing .env file is normal
	envErr := godotenv.Load()

	cmd := "run"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "run":
		return runSession(args, out, envErr)
	case "ports":
		return listPorts(out)
	case "config":
		return configCommand(args, out)
	case "help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// parseFlags binds cfg to a fresh flag set and parses args into it.
func parseFlags(name string, cfg *config.Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// loaded is the outcome of loadConfig.
type loaded struct {
	cfg  config.Config
	args []string

	// store is nil when it could not be opened; storeErr says why
	store    *store.Store
	storeErr error
}

// loadConfig layers defaults, persisted settings, the environment and
// flags. The database path itself is resolved from the environment and
// flags first. A store that cannot be opened is not an error here.
func loadConfig(name string, args []string) (loaded, error) {
	env := config.EnvSource{Prefix: config.EnvPrefix}

	boot := config.Default()
	if err := boot.Apply(env); err != nil {
		return loaded{}, err
	}
	if _, err := parseFlags(name, &boot, args); err != nil {
		return loaded{}, err
	}

	var l loaded
	l.store, l.storeErr = store.New(boot.DBPath)

	l.cfg = config.Default()
	if l.store != nil {
		if err := l.cfg.Apply(l.store.Settings()); err != nil {
			l.store.Close()
			return loaded{}, fmt.Errorf("persisted %w", err)
		}
	}

	rest, err := func() ([]string, error) {
		if err := l.cfg.Apply(env); err != nil {
			return nil, err
		}
		rest, err := parseFlags(name, &l.cfg, args)
		if err != nil {
			return nil, err
		}
		return rest, l.cfg.Validate()
	}()
	if err != nil {
		if l.store != nil {
			l.store.Close()
		}
		return loaded{}, err
	}

	l.args = rest
	return l, nil
}

func runSession(args []string, out io.Writer, envErr error) error {
	l, err := loadConfig("run", args)
	if err != nil {
		return err
	}
	if l.store != nil {
		defer l.store.Close()
	}
	cfg := l.cfg

	logger.Init(cfg.Logging())
	log := logger.Named("main")

	if l.storeErr != nil {
		// The session still runs on the other layers
		log.Warn().Err(l.storeErr).Msg("persisted settings unavailable")
	}
	if envErr != nil {
		log.Debug().Msg("no .env file loaded")
	}

	// The tray needs the main thread, as does the preview window
	if cfg.Tray {
		cfg.Window = false
	}

	sessionID := uuid.NewString()
	log.Info().Str("session", sessionID).Str("db", cfg.DBPath).Msg("starting pomohand")

	cam, err := capture.OpenDevice(cfg.CameraID, cfg.MaxProbe, capture.Options{
		Width:  capture.DefaultWidth,
		Height: capture.DefaultHeight,
		Flip:   cfg.Flip,
	})
	if err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer cam.Close()
	log.Info().Int("device", cam.DeviceID()).Msg("camera opened")

	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		det = mp
		log.Info().Msg("using MediaPipe hand detection")
	} else {
		log.Warn().Err(err).Msg("MediaPipe not available, gestures disabled")
		det = detector.NewMockDetector()
	}
	defer det.Close()

	ch := link.Open(cfg.Serial())
	defer ch.Close()

	board := status.NewBoard()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.StatusAddr != "" {
		srv := server.New(server.Config{Board: board, Metrics: m})
		go func() {
			if err := srv.Run(ctx, cfg.StatusAddr); err != nil {
				log.Warn().Err(err).Msg("status server stopped")
			}
		}()
	}

	var renderer app.Renderer
	if cfg.Window {
		wr := app.NewWindowRenderer(cfg.CenterMargin)
		defer wr.Close()
		renderer = wr
	}

	session := app.NewSession(app.Config{
		SessionID:  sessionID,
		HoldFrames: cfg.HoldFrames,
		Gate:       cfg.Gate(),
		Durations:  cfg.Durations(),
		Source:     app.NewCameraSource(cam, det),
		Link:       ch,
		Renderer:   renderer,
		Board:      board,
		Metrics:    m,
	})

	app.PrintBanner(out, cfg.HoldFrames, cfg.Durations(), cfg.Window)

	if cfg.Tray {
		err = runWithTray(ctx, stop, session, board, cfg.StatusAddr)
	} else {
		err = session.Run(ctx)
	}

	app.PrintGoodbye(out, err)
	return app.ExitError(err)
}

// runWithTray runs the session in the background while the tray owns the
// main goroutine.
func runWithTray(ctx context.Context, stop context.CancelFunc, session *app.Session, board *status.Board, statusAddr string) error {
	t := tray.New(board)
	t.OnQuit(stop)
	if statusAddr != "" {
		t.OnOpenStatus(func() { openBrowser("http://" + statusAddr + "/api/status") })
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- session.Run(ctx)
		t.Quit()
	}()

	t.Run()
	stop()
	return <-errCh
}

func openBrowser(url string) {
	name := "xdg-open"
	if runtime.GOOS == "darwin" {
		name = "open"
	}
	if err := exec.Command(name, url).Start(); err != nil {
		logger.Named("main").Warn().Err(err).Str("url", url).Msg("failed to open browser")
	}
}

func listPorts(out io.Writer) error {
	ports, err := link.Ports()
	if err != nil {
		return fmt.Errorf("list serial ports: %w", err)
	}
	if len(ports) == 0 {
		fmt.Fprintln(out, "no serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Fprintln(out, p)
	}
	return nil
}
