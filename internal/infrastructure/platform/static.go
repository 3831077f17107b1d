package platform

import (
	"context"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
)

// Compile-time interface check.
var _ port.PreferenceSource = (*StaticSource)(nil)

// StaticSource replays a fixed list of snapshots. With Hold set the stream
// stays open after the last item until ctx ends; otherwise it closes.
type StaticSource struct {
	name     string
	priority int
	items    []port.RawPreferences
	Hold     bool
}

// NewStaticSource creates a source that emits items in order.
func NewStaticSource(name string, priority int, items ...port.RawPreferences) *StaticSource {
	return &StaticSource{name: name, priority: priority, items: items}
}

// Name implements port.PreferenceSource.
func (s *StaticSource) Name() string {
	return s.name
}

// Priority implements port.PreferenceSource.
func (s *StaticSource) Priority() int {
	return s.priority
}

// Available implements port.PreferenceSource.
func (*StaticSource) Available(context.Context) bool {
	return true
}

// Subscribe implements port.PreferenceSource.
func (s *StaticSource) Subscribe(ctx context.Context, interest entity.Interest) (<-chan port.RawPreferences, error) {
	out := make(chan port.RawPreferences)
	go func() {
		defer close(out)
		for _, item := range s.items {
			if !emit(ctx, out, maskRaw(item, interest)) {
				return
			}
		}
		if s.Hold {
			<-ctx.Done()
		}
	}()
	return out, nil
}
