package platform

import (
	"context"
	"sync"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/infrastructure/config"
	"github.com/bnema/sysprefs/internal/logging"
)

const (
	sourceNameOverride = "config"
	priorityOverride   = 1000
)

// Compile-time interface check.
var _ port.PreferenceSource = (*OverrideSource)(nil)

// OverrideSource exposes the [preferences.overrides] config section as a
// source. Update re-emits to every live subscriber after a config reload.
type OverrideSource struct {
	mu      sync.Mutex
	current port.RawPreferences
	wakers  map[chan struct{}]struct{}
}

// NewOverrideSource creates a source from the given overrides.
func NewOverrideSource(overrides config.OverridesConfig) *OverrideSource {
	return &OverrideSource{
		current: rawFromOverrides(overrides),
		wakers:  make(map[chan struct{}]struct{}),
	}
}

// Name implements port.PreferenceSource.
func (*OverrideSource) Name() string {
	return sourceNameOverride
}

// Priority implements port.PreferenceSource.
func (*OverrideSource) Priority() int {
	return priorityOverride
}

// Available implements port.PreferenceSource. Unset overrides express no
// preference, so the source is always usable.
func (*OverrideSource) Available(context.Context) bool {
	return true
}

// Update replaces the overrides and wakes every subscriber.
func (o *OverrideSource) Update(overrides config.OverridesConfig) {
	o.mu.Lock()
	o.current = rawFromOverrides(overrides)
	for w := range o.wakers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
	o.mu.Unlock()
}

// Current returns the overrides as a raw snapshot.
func (o *OverrideSource) Current() port.RawPreferences {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Subscribe implements port.PreferenceSource.
func (o *OverrideSource) Subscribe(ctx context.Context, interest entity.Interest) (<-chan port.RawPreferences, error) {
	wake := make(chan struct{}, 1)
	o.mu.Lock()
	o.wakers[wake] = struct{}{}
	o.mu.Unlock()

	out := make(chan port.RawPreferences)
	go func() {
		defer close(out)
		defer func() {
			o.mu.Lock()
			delete(o.wakers, wake)
			o.mu.Unlock()
		}()

		last := maskRaw(o.Current(), interest)
		if !emit(ctx, out, last) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-wake:
				current := maskRaw(o.Current(), interest)
				if rawEqual(current, last) {
					continue
				}
				last = current
				logging.FromContext(ctx).Debug().Str("source", sourceNameOverride).Msg("overrides changed")
				if !emit(ctx, out, current) {
					return
				}
			}
		}
	}()

	return out, nil
}

// rawFromOverrides maps config strings onto raw values. Unknown or empty
// strings express no preference.
func rawFromOverrides(o config.OverridesConfig) port.RawPreferences {
	var raw port.RawPreferences

	switch entity.ParseColorScheme(o.ColorScheme) {
	case entity.ColorSchemeLight:
		raw.ColorScheme = port.RawColorSchemeLight
	case entity.ColorSchemeDark:
		raw.ColorScheme = port.RawColorSchemeDark
	}

	switch entity.ParseContrast(o.Contrast) {
	case entity.ContrastMore:
		raw.Contrast = port.RawContrastMore
	case entity.ContrastLess:
		raw.Contrast = port.RawContrastLess
	case entity.ContrastCustom:
		raw.Contrast = port.RawContrastCustom
	}

	if entity.ParseReducedMotion(o.ReducedMotion) == entity.ReducedMotionReduce {
		raw.ReducedMotion = port.RawReducedMotionReduce
	}
	if entity.ParseReducedTransparency(o.ReducedTransparency) == entity.ReducedTransparencyReduce {
		raw.ReducedTransparency = port.RawReducedTransparencyReduce
	}

	if o.AccentColor != "" {
		if c, ok := rawColorFromHex(o.AccentColor); ok {
			raw.AccentColor = c
		}
	}
	if o.DoubleClickInterval > 0 {
		raw.DoubleClickInterval = durationPtr(o.DoubleClickInterval)
	}

	return raw
}
