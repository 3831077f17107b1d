package platform

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/logging"
)

const sourceNameResolver = "resolver"

// Compile-time interface check.
var _ port.PreferenceSource = (*Resolver)(nil)

// SourceStatus describes one registered source.
type SourceStatus struct {
	Name      string `json:"name"`
	Priority  int    `json:"priority"`
	Available bool   `json:"available"`
}

// Resolver merges several sources into one stream. For each field the
// highest-priority source that expresses a value wins.
type Resolver struct {
	mu      sync.RWMutex
	sources []port.PreferenceSource
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		sources: make([]port.PreferenceSource, 0),
	}
}

// RegisterSource adds a source. Registration order does not matter.
func (r *Resolver) RegisterSource(src port.PreferenceSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, src)
}

// sorted returns the sources by priority, highest first. Ties keep
// registration order.
func (r *Resolver) sorted() []port.PreferenceSource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := make([]port.PreferenceSource, len(r.sources))
	copy(sorted, r.sources)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})
	return sorted
}

// Describe reports every registered source in priority order.
func (r *Resolver) Describe(ctx context.Context) []SourceStatus {
	sources := r.sorted()
	statuses := make([]SourceStatus, 0, len(sources))
	for _, src := range sources {
		statuses = append(statuses, SourceStatus{
			Name:      src.Name(),
			Priority:  src.Priority(),
			Available: src.Available(ctx),
		})
	}
	return statuses
}

// Name implements port.PreferenceSource.
func (*Resolver) Name() string {
	return sourceNameResolver
}

// Priority implements port.PreferenceSource.
func (r *Resolver) Priority() int {
	sources := r.sorted()
	if len(sources) == 0 {
		return 0
	}
	return sources[0].Priority()
}

// Available implements port.PreferenceSource. A resolver without any usable
// source still works: it reports the defaults.
func (*Resolver) Available(context.Context) bool {
	return true
}

type childStream struct {
	name   string
	stream <-chan port.RawPreferences
}

// childUpdate carries a snapshot from child index, or ended when that
// child's stream closed.
type childUpdate struct {
	index int
	raw   port.RawPreferences
	ended bool
}

// Subscribe implements port.PreferenceSource. It subscribes to every
// available source and emits a merged snapshot whenever one of them emits
// something that changes the result. Nothing is emitted until every child
// has reported its initial snapshot or ended, so the first merged item
// already reflects all sources. The stream ends when every child stream has
// ended.
func (r *Resolver) Subscribe(ctx context.Context, interest entity.Interest) (<-chan port.RawPreferences, error) {
	log := logging.FromContext(ctx)

	children := make([]childStream, 0)
	for _, src := range r.sorted() {
		if !src.Available(ctx) {
			log.Debug().Str("source", src.Name()).Msg("preference source not available")
			continue
		}
		stream, err := src.Subscribe(ctx, interest)
		if err != nil {
			log.Warn().Err(err).Str("source", src.Name()).Msg("preference source subscribe failed")
			continue
		}
		log.Debug().Str("source", src.Name()).Int("priority", src.Priority()).Msg("preference source subscribed")
		children = append(children, childStream{name: src.Name(), stream: stream})
	}

	if len(children) == 0 {
		log.Info().Msg("no preference source available, using defaults")
		return holdSource(ctx, port.RawPreferences{}), nil
	}

	updates := make(chan childUpdate)
	g, gctx := errgroup.WithContext(ctx)
	for i, child := range children {
		childLog := logging.FromContext(logging.WithSource(ctx, child.name))
		g.Go(func() error {
			for raw := range child.stream {
				select {
				case updates <- childUpdate{index: i, raw: raw}:
				case <-gctx.Done():
					return nil
				}
			}
			childLog.Debug().Msg("preference source stream ended")
			select {
			case updates <- childUpdate{index: i, ended: true}:
			case <-gctx.Done():
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(updates)
	}()

	out := make(chan port.RawPreferences)
	go func() {
		defer close(out)

		latest := make([]*port.RawPreferences, len(children))
		reported := make([]bool, len(children))
		waiting := len(children)
		var last *port.RawPreferences
		for u := range updates {
			if !reported[u.index] {
				reported[u.index] = true
				waiting--
			}
			if !u.ended {
				raw := u.raw
				latest[u.index] = &raw
			}
			if waiting > 0 {
				continue
			}

			merged := mergeRaw(latest)
			if last != nil && rawEqual(*last, merged) {
				continue
			}
			last = &merged
			if !emit(ctx, out, merged) {
				return
			}
		}
	}()

	return out, nil
}

// mergeRaw combines snapshots ordered by priority, highest first. Nil
// entries are sources that have not reported yet.
func mergeRaw(ordered []*port.RawPreferences) port.RawPreferences {
	var merged port.RawPreferences
	var haveScheme, haveContrast, haveMotion, haveTransparency bool

	for _, raw := range ordered {
		if raw == nil {
			continue
		}
		if !haveScheme && raw.ColorScheme != port.RawColorSchemeNoPreference {
			merged.ColorScheme, haveScheme = raw.ColorScheme, true
		}
		if !haveContrast && raw.Contrast != port.RawContrastNoPreference {
			merged.Contrast, haveContrast = raw.Contrast, true
		}
		if !haveMotion && raw.ReducedMotion != port.RawReducedMotionNoPreference {
			merged.ReducedMotion, haveMotion = raw.ReducedMotion, true
		}
		if !haveTransparency && raw.ReducedTransparency != port.RawReducedTransparencyNoPreference {
			merged.ReducedTransparency, haveTransparency = raw.ReducedTransparency, true
		}
		if merged.AccentColor == nil && raw.AccentColor != nil {
			merged.AccentColor = raw.AccentColor
		}
		if merged.DoubleClickInterval == nil && raw.DoubleClickInterval != nil {
			merged.DoubleClickInterval = raw.DoubleClickInterval
		}
	}

	return merged
}
