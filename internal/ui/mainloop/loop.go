// Package mainloop provides the host application's fixed-rate tick loop.
//
// Systems registered with AddSystem run once per tick, in registration order,
// on the loop goroutine. Other goroutines hand work to the loop with Post.
package mainloop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/sysprefs/internal/logging"
)

// ErrStopLoop can be returned by a system to end Run without an error.
var ErrStopLoop = errors.New("mainloop: stop")

// System is one per-tick step. It must not block.
type System func(ctx context.Context) error

type namedSystem struct {
	name string
	fn   System
}

// Loop runs systems at a fixed interval.
type Loop struct {
	interval time.Duration
	onError  func(system string, err error)

	mu      sync.Mutex
	systems []namedSystem
	order   []string
	pending map[string]func()

	ticks atomic.Uint64
}

// Option configures a Loop.
type Option func(*Loop)

// WithErrorHandler sets the callback for system errors. Errors never stop the
// loop except ErrStopLoop.
func WithErrorHandler(fn func(system string, err error)) Option {
	return func(l *Loop) {
		l.onError = fn
	}
}

// New creates a loop ticking every interval.
func New(interval time.Duration, opts ...Option) *Loop {
	if interval <= 0 {
		panic("mainloop.New: interval must be positive")
	}

	l := &Loop{
		interval: interval,
		pending:  make(map[string]func()),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddSystem registers fn to run every tick.
func (l *Loop) AddSystem(name string, fn System) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.systems = append(l.systems, namedSystem{name: name, fn: fn})
}

// Post schedules fn to run at the start of the next tick. Posting again with
// the same key before that tick replaces the earlier function, so a burst
// collapses into one call with the latest fn. Safe from any goroutine.
func (l *Loop) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, queued := l.pending[key]; !queued {
		l.order = append(l.order, key)
	}
	l.pending[key] = fn
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}

// Tick runs posted tasks then every system once. Hosts that own their own
// loop (e.g. a TUI framework) call it directly instead of Run.
// It returns ErrStopLoop if a system asked to stop.
func (l *Loop) Tick(ctx context.Context) error {
	l.mu.Lock()
	order := l.order
	pending := l.pending
	l.order = nil
	l.pending = make(map[string]func())
	systems := make([]namedSystem, len(l.systems))
	copy(systems, l.systems)
	l.mu.Unlock()

	for _, key := range order {
		pending[key]()
	}

	var stop error
	for _, s := range systems {
		err := s.fn(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrStopLoop):
			stop = ErrStopLoop
		default:
			l.reportError(ctx, s.name, err)
		}
	}

	l.ticks.Add(1)
	return stop
}

// Run ticks until ctx is done or a system returns ErrStopLoop.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	if err := l.Tick(ctx); err != nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := l.Tick(ctx); err != nil {
				return nil
			}
		}
	}
}

func (l *Loop) reportError(ctx context.Context, system string, err error) {
	if l.onError != nil {
		l.onError(system, err)
		return
	}
	logging.FromContext(ctx).Error().Err(err).Str("system", system).Msg("main loop system failed")
}
