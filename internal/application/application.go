package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/eugenenazirov/stubd/internal/config"
	"github.com/eugenenazirov/stubd/internal/framework"
	"github.com/eugenenazirov/stubd/internal/priority"
)

const (
	// DefaultIdleInterval is how long the idle loop sleeps between liveness checks.
	DefaultIdleInterval = 10 * time.Second
	// DefaultNiceIncrement is added to the process niceness at startup.
	DefaultNiceIncrement = -5
)

// ErrFramework is returned when the runtime framework fails to initialize.
var ErrFramework = errors.New("initialize runtime framework")

// Pacer blocks until the next idle tick or until ctx is done.
type Pacer interface {
	Wait(ctx context.Context) error
}

// App runs the startup epilogue once Settings are resolved.
type App struct {
	settings      config.Settings
	logger        *zap.Logger
	runtime       framework.Runtime
	args          []string
	adjuster      priority.Adjuster
	niceIncrement int
	interval      time.Duration
	pacer         Pacer
}

// Option customises an App.
type Option func(*App)

// WithArgs sets the arguments handed to the runtime framework's Init.
func WithArgs(args []string) Option {
	return func(a *App) {
		a.args = args
	}
}

// WithPriorityAdjuster replaces the adjuster acting on the current process.
func WithPriorityAdjuster(adjuster priority.Adjuster) Option {
	return func(a *App) {
		if adjuster != nil {
			a.adjuster = adjuster
		}
	}
}

// WithNiceIncrement overrides DefaultNiceIncrement.
func WithNiceIncrement(inc int) Option {
	return func(a *App) {
		a.niceIncrement = inc
	}
}

// WithIdleInterval overrides DefaultIdleInterval.
func WithIdleInterval(interval time.Duration) Option {
	return func(a *App) {
		if interval > 0 {
			a.interval = interval
		}
	}
}

// WithPacer replaces the rate limiter that paces the idle loop.
func WithPacer(pacer Pacer) Option {
	return func(a *App) {
		a.pacer = pacer
	}
}

// New wires the epilogue for the resolved settings.
func New(settings config.Settings, runtime framework.Runtime, logger *zap.Logger, opts ...Option) (*App, error) {
	if runtime == nil {
		return nil, fmt.Errorf("%w: runtime is required", ErrFramework)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		settings:      settings,
		logger:        logger,
		runtime:       runtime,
		adjuster:      priority.Process{},
		niceIncrement: DefaultNiceIncrement,
		interval:      DefaultIdleInterval,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.pacer == nil {
		app.pacer = newIntervalPacer(app.interval)
	}
	return app, nil
}

// newIntervalPacer allows one Wait per interval. The initial token is spent
// so the first Wait already blocks for a full interval.
func newIntervalPacer(interval time.Duration) *rate.Limiter {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	limiter.Allow()
	return limiter
}

// Settings returns the settings the app was built with.
func (a *App) Settings() config.Settings {
	return a.settings
}

// Run adjusts the process priority, initializes the runtime framework and
// idles until the framework stops being operational or ctx is done. Priority
// and framework failures are fatal.
func (a *App) Run(ctx context.Context) error {
	if err := a.adjustPriority(); err != nil {
		return err
	}

	a.logger.Info("initializing runtime framework")
	if err := a.runtime.Init(a.args); err != nil {
		return fmt.Errorf("%w: %w", ErrFramework, err)
	}
	a.logger.Info("runtime framework initialized")

	for a.runtime.OK() {
		a.logger.Info("sleeping", zap.Duration("interval", a.interval))
		if err := a.pacer.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				a.logger.Info("idle loop cancelled", zap.Error(ctx.Err()))
				return nil
			}
			return fmt.Errorf("idle wait: %w", err)
		}
	}

	a.logger.Info("runtime framework no longer operational")
	return nil
}

func (a *App) adjustPriority() error {
	current, err := a.adjuster.Nice(0)
	if err != nil {
		a.logger.Error("query niceness failed", zap.Error(err))
		return err
	}
	a.logger.Info("queried niceness", zap.Int("nice", current))

	if a.niceIncrement == 0 {
		return nil
	}
	adjusted, err := a.adjuster.Nice(a.niceIncrement)
	if err != nil {
		a.logger.Error("adjust niceness failed", zap.Int("increment", a.niceIncrement), zap.Error(err))
		return err
	}
	a.logger.Info("adjusted niceness", zap.Int("increment", a.niceIncrement), zap.Int("nice", adjusted))
	return nil
}
