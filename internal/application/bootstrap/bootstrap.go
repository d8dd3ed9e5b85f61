// Package bootstrap sequences engine loading and frame-host start-up.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/younwookim/webgames/internal/application/engine"
	"github.com/younwookim/webgames/internal/application/frame"
)

// ErrStartCancelled is returned by Run when CancelStarting was called first
var ErrStartCancelled = errors.New("bootstrap: start cancelled")

// StartFunc runs the frame host. It blocks for the life of the session.
type StartFunc func(ctx context.Context) error

// Sequencer loads the engine, initialises it and then starts the frame host
type Sequencer struct {
	engine    engine.Engine
	driver    *frame.Driver
	start     StartFunc
	logger    *log.Logger
	cancelled atomic.Bool
}

// New creates a sequencer. start is invoked once the engine is ready.
func New(eng engine.Engine, driver *frame.Driver, start StartFunc, logger *log.Logger) *Sequencer {
	if logger == nil {
		logger = driver.Logger()
	}
	return &Sequencer{
		engine: eng,
		driver: driver,
		start:  start,
		logger: logger.WithPrefix("bootstrap"),
	}
}

// CancelStarting stops Run from starting the driver. It may be called from
// any goroutine, including while Run waits for the engine to load.
func (s *Sequencer) CancelStarting() {
	s.cancelled.Store(true)
}

// Run performs the start-up sequence and then blocks in the frame host
func (s *Sequencer) Run(ctx context.Context) error {
	if s.cancelled.Load() {
		s.driver.Cancel()
		return ErrStartCancelled
	}

	s.logger.Info("loading engine")
	if err := s.engine.Initialize(ctx); err != nil {
		s.driver.Cancel()
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	// a cancel issued while the engine was loading still wins
	if s.cancelled.Load() {
		s.driver.Cancel()
		return ErrStartCancelled
	}

	s.engine.Init(s.driver.Host())
	s.driver.Start()

	if s.start == nil {
		return nil
	}
	return s.start(ctx)
}
