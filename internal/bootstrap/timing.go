package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/sysprefs/internal/logging"
)

// phaseTimer records how long each startup phase of the plugin took.
type phaseTimer struct {
	mu     sync.Mutex
	start  time.Time
	last   time.Time
	phases []phase
}

type phase struct {
	name string
	dur  time.Duration
}

func newPhaseTimer() *phaseTimer {
	now := time.Now()
	return &phaseTimer{start: now, last: now}
}

// Mark closes the current phase under name.
func (t *phaseTimer) Mark(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.phases = append(t.phases, phase{name: name, dur: now.Sub(t.last)})
	t.last = now
}

// Names returns the recorded phase names in order.
func (t *phaseTimer) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, len(t.phases))
	for i, p := range t.phases {
		names[i] = p.name
	}
	return names
}

// LogDebug writes every phase duration on one debug line.
func (t *phaseTimer) LogDebug(ctx context.Context, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	event := logging.FromContext(ctx).Debug().Dur("total", time.Since(t.start))
	for _, p := range t.phases {
		event = event.Dur(p.name, p.dur)
	}
	event.Msg(msg)
}
