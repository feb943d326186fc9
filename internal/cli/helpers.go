package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/timescript"
	"github.com/aretw0/timescript/internal/config"
	"github.com/aretw0/timescript/internal/logging"
	"github.com/aretw0/timescript/pkg/observability"
)

// App bundles what every command needs: configuration, logger, engine and
// output streams.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Engine  *timescript.Engine
	Metrics *observability.Metrics
	Out     io.Writer
	Err     io.Writer

	closers []io.Closer
}

// AppOptions are the persistent CLI flags.
type AppOptions struct {
	ConfigPath string
	LogLevel   string // overrides the configured level when set
}

// NewApp loads configuration and builds the engine.
func NewApp(opts AppOptions, out, errOut io.Writer) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	logger, logCloser, err := createLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
		Out:     out,
		Err:     errOut,
		closers: []io.Closer{logCloser},
	}

	engine, cacheCloser := createEngine(cfg, logger, app.Metrics)
	app.Engine = engine
	if cacheCloser != nil {
		app.closers = append(app.closers, cacheCloser)
	}
	return app, nil
}

// Close releases the cache connection and the log file.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// createLogger configures the application logger.
// It writes to Stderr (to separate from Stdout document output).
func createLogger(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	logger, closer := logging.New(logging.Options{
		Level:     level,
		Format:    cfg.Format,
		File:      cfg.File,
		MaxSizeMB: cfg.MaxSizeMB,
	})
	return logger, closer, nil
}

// ReadSource reads a script from path, or from stdin when path is "-".
func ReadSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorProfile returns the color profile for w, plain ASCII when w is not a terminal.
func colorProfile(w io.Writer) termenv.Profile {
	if !isTerminal(w) {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}
