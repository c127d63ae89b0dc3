package app

import (
	"sync"
	"time"

	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/internal/ports"
	"github.com/qwerty0zero/book-catalog/pkg/log"
)

// ShutdownTimeout is the maximum time to wait for background work on stop.
const ShutdownTimeout = 10 * time.Second

// State represents the lifecycle state of a browser.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	default:
		return "Unknown"
	}
}

// EventEmitter is called when lifecycle state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Lifecycle guards start/stop of a browser and tracks its background
// goroutines (the favorites watcher).
type Lifecycle struct {
	mu      sync.RWMutex
	state   State
	wg      sync.WaitGroup
	logger  ports.Logger
	emitter EventEmitter
}

// NewLifecycle creates a new lifecycle manager in StateStopped.
func NewLifecycle(logger ports.Logger, emitter EventEmitter) *Lifecycle {
	return &Lifecycle{
		state:   StateStopped,
		logger:  logger,
		emitter: emitter,
	}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo moves to newState if the transition is allowed:
// Stopped -> Starting -> Running -> Stopping -> Stopped, and Starting -> Stopped
// when startup fails.
func (l *Lifecycle) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state

	var err error
	switch oldState {
	case StateStopped:
		if newState != StateStarting {
			err = domain.ErrNotRunning
		}
	case StateStarting:
		if newState != StateRunning && newState != StateStopped {
			err = domain.ErrAlreadyRunning
		}
	case StateRunning:
		if newState != StateStopping {
			err = domain.ErrAlreadyRunning
		}
	case StateStopping:
		if newState != StateStopped {
			err = domain.ErrAlreadyRunning
		}
	}
	if err != nil {
		l.mu.Unlock()
		return err
	}

	l.state = newState
	l.mu.Unlock()

	if l.emitter != nil {
		l.emitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Debug("state transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)

	return nil
}

// Go runs fn on a tracked goroutine.
func (l *Lifecycle) Go(fn func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		fn()
	}()
}

// WaitWithTimeout waits for tracked goroutines to finish.
// Returns domain.ErrShutdownTimeout if the timeout expires.
func (l *Lifecycle) WaitWithTimeout(timeout time.Duration) error {
	if err := waitTimeout(&l.wg, timeout); err != nil {
		l.logger.Warn("shutdown timeout, abandoning background work",
			log.Duration("timeout", timeout),
		)
		return err
	}
	return nil
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return domain.ErrShutdownTimeout
	}
}
