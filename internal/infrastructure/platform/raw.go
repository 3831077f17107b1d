// Package platform implements port.PreferenceSource for the desktop
// environments sysprefs runs on.
package platform

import (
	"context"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
)

// rawEqual compares two raw snapshots by value, following the optional pointers.
func rawEqual(a, b port.RawPreferences) bool {
	if a.ColorScheme != b.ColorScheme ||
		a.Contrast != b.Contrast ||
		a.ReducedMotion != b.ReducedMotion ||
		a.ReducedTransparency != b.ReducedTransparency {
		return false
	}
	if (a.AccentColor == nil) != (b.AccentColor == nil) {
		return false
	}
	if a.AccentColor != nil && *a.AccentColor != *b.AccentColor {
		return false
	}
	if (a.DoubleClickInterval == nil) != (b.DoubleClickInterval == nil) {
		return false
	}
	return a.DoubleClickInterval == nil || *a.DoubleClickInterval == *b.DoubleClickInterval
}

func rawColorFromHex(hex string) (*port.RawColor, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, false
	}
	return &port.RawColor{R: c.R, G: c.G, B: c.B, A: 1}, true
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

// emit sends raw unless ctx ends first.
func emit(ctx context.Context, out chan<- port.RawPreferences, raw port.RawPreferences) bool {
	select {
	case out <- raw:
		return true
	case <-ctx.Done():
		return false
	}
}

// pollSource calls read every interval and emits when the result changes.
// The first read is always emitted. The channel closes when ctx is done.
func pollSource(
	ctx context.Context,
	interval time.Duration,
	read func(ctx context.Context) port.RawPreferences,
) <-chan port.RawPreferences {
	out := make(chan port.RawPreferences)

	go func() {
		defer close(out)

		last := read(ctx)
		if !emit(ctx, out, last) {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				current := read(ctx)
				if rawEqual(current, last) {
					continue
				}
				last = current
				if !emit(ctx, out, current) {
					return
				}
			}
		}
	}()

	return out
}

// holdSource emits raw once and keeps the channel open until ctx is done.
// Used by sources whose value cannot change while the process runs.
func holdSource(ctx context.Context, raw port.RawPreferences) <-chan port.RawPreferences {
	out := make(chan port.RawPreferences)
	go func() {
		defer close(out)
		if !emit(ctx, out, raw) {
			return
		}
		<-ctx.Done()
	}()
	return out
}

// maskRaw clears every category outside interest.
func maskRaw(raw port.RawPreferences, interest entity.Interest) port.RawPreferences {
	var out port.RawPreferences
	if interest.Has(entity.InterestColorScheme) {
		out.ColorScheme = raw.ColorScheme
	}
	if interest.Has(entity.InterestContrast) {
		out.Contrast = raw.Contrast
	}
	if interest.Has(entity.InterestReducedMotion) {
		out.ReducedMotion = raw.ReducedMotion
	}
	if interest.Has(entity.InterestReducedTransparency) {
		out.ReducedTransparency = raw.ReducedTransparency
	}
	if interest.Has(entity.InterestAccentColor) {
		out.AccentColor = raw.AccentColor
	}
	if interest.Has(entity.InterestDoubleClickInterval) {
		out.DoubleClickInterval = raw.DoubleClickInterval
	}
	return out
}
