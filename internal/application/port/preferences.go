package port

import (
	"context"
	"time"

	"github.com/bnema/sysprefs/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_preferences.go -package=mocks github.com/bnema/sysprefs/internal/application/port PreferenceSource,PreferenceStore

// RawColorScheme is the platform's color scheme value.
type RawColorScheme uint8

const (
	RawColorSchemeNoPreference RawColorScheme = iota
	RawColorSchemeLight
	RawColorSchemeDark
)

// RawContrast is the platform's contrast value.
type RawContrast uint8

const (
	RawContrastNoPreference RawContrast = iota
	RawContrastMore
	RawContrastLess
	RawContrastCustom
)

// RawReducedMotion is the platform's reduced motion value.
type RawReducedMotion uint8

const (
	RawReducedMotionNoPreference RawReducedMotion = iota
	RawReducedMotionReduce
)

// RawReducedTransparency is the platform's reduced transparency value.
type RawReducedTransparency uint8

const (
	RawReducedTransparencyNoPreference RawReducedTransparency = iota
	RawReducedTransparencyReduce
)

// RawColor is an sRGBA color at the platform's native float64 precision.
type RawColor struct {
	R, G, B, A float64
}

// RawPreferences is the platform's view of every known preference at the
// moment one of them changed. Nil optionals mean unset or unsupported.
type RawPreferences struct {
	ColorScheme         RawColorScheme
	Contrast            RawContrast
	ReducedMotion       RawReducedMotion
	ReducedTransparency RawReducedTransparency
	AccentColor         *RawColor
	DoubleClickInterval *time.Duration
}

// PreferenceSource streams platform preference snapshots.
type PreferenceSource interface {
	// Name returns a human-readable name for this source.
	Name() string

	// Priority returns the source's priority when several are merged.
	// Higher values win. Recommended ranges:
	//   - 1000: explicit user overrides
	//   -  100: native platform APIs (portal, registry)
	//   -   10+: fallbacks (gsettings, env vars)
	Priority() int

	// Available returns true if this source can be used on this system.
	Available(ctx context.Context) bool

	// Subscribe starts watching the categories in interest.
	// The channel yields the current state first, then a full snapshot every
	// time a watched preference changes. It is closed when the source ends or
	// ctx is done.
	Subscribe(ctx context.Context, interest entity.Interest) (<-chan RawPreferences, error)
}

// PreferenceStore holds the process-wide preference snapshot.
// Store replaces the whole value; there is no way to mutate one field.
type PreferenceStore interface {
	Load() entity.Preferences
	Store(prefs entity.Preferences)
}
