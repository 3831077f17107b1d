// Package entity contains domain entities representing core business concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import (
	"fmt"
	"strings"
	"time"
)

// ColorScheme is the user's preference for either light or dark mode.
// See https://developer.mozilla.org/en-US/docs/Web/CSS/@media/prefers-color-scheme.
type ColorScheme uint8

const (
	// ColorSchemeNoPreference means no preference was expressed, the platform
	// does not support it, or reading it failed.
	ColorSchemeNoPreference ColorScheme = iota
	ColorSchemeLight
	ColorSchemeDark
)

func (c ColorScheme) String() string {
	switch c {
	case ColorSchemeLight:
		return "light"
	case ColorSchemeDark:
		return "dark"
	default:
		return noPreference
	}
}

// ParseColorScheme maps a config value to a ColorScheme.
// Unknown values map to ColorSchemeNoPreference.
func ParseColorScheme(s string) ColorScheme {
	switch normalize(s) {
	case "light", "prefer-light":
		return ColorSchemeLight
	case "dark", "prefer-dark":
		return ColorSchemeDark
	default:
		return ColorSchemeNoPreference
	}
}

// Contrast is the user's preferred contrast level.
// See https://developer.mozilla.org/en-US/docs/Web/CSS/@media/prefers-contrast.
type Contrast uint8

const (
	ContrastNoPreference Contrast = iota
	ContrastMore
	ContrastLess
	// ContrastCustom means a forced color palette whose contrast is neither
	// more nor less.
	ContrastCustom
)

func (c Contrast) String() string {
	switch c {
	case ContrastMore:
		return "more"
	case ContrastLess:
		return "less"
	case ContrastCustom:
		return "custom"
	default:
		return noPreference
	}
}

// ParseContrast maps a config value to a Contrast.
func ParseContrast(s string) Contrast {
	switch normalize(s) {
	case "more", "high":
		return ContrastMore
	case "less", "low":
		return ContrastLess
	case "custom":
		return ContrastCustom
	default:
		return ContrastNoPreference
	}
}

// ReducedMotion is the user's preference for a minimal amount of motion.
type ReducedMotion uint8

const (
	ReducedMotionNoPreference ReducedMotion = iota
	ReducedMotionReduce
)

func (r ReducedMotion) String() string {
	if r == ReducedMotionReduce {
		return reduce
	}
	return noPreference
}

// ParseReducedMotion maps a config value to a ReducedMotion.
func ParseReducedMotion(s string) ReducedMotion {
	if normalize(s) == reduce {
		return ReducedMotionReduce
	}
	return ReducedMotionNoPreference
}

// ReducedTransparency indicates that transparent or semitransparent
// backgrounds should be avoided.
type ReducedTransparency uint8

const (
	ReducedTransparencyNoPreference ReducedTransparency = iota
	ReducedTransparencyReduce
)

func (r ReducedTransparency) String() string {
	if r == ReducedTransparencyReduce {
		return reduce
	}
	return noPreference
}

// ParseReducedTransparency maps a config value to a ReducedTransparency.
func ParseReducedTransparency(s string) ReducedTransparency {
	if normalize(s) == reduce {
		return ReducedTransparencyReduce
	}
	return ReducedTransparencyNoPreference
}

// AccentColor is the system wide accent color. Valid is false when the
// platform has none or does not support it.
type AccentColor struct {
	Color Color
	Valid bool
}

func (a AccentColor) String() string {
	if !a.Valid {
		return "none"
	}
	return a.Color.Hex()
}

// DoubleClickInterval is the maximum time between the first and second click
// for them to count as a double click. A typical value is ~500ms.
type DoubleClickInterval struct {
	Duration time.Duration
	Valid    bool
}

func (d DoubleClickInterval) String() string {
	if !d.Valid {
		return "none"
	}
	return d.Duration.String()
}

// Preferences is a snapshot of every known system preference.
// It is a plain value: copy it freely and compare it with ==.
type Preferences struct {
	ColorScheme         ColorScheme
	Contrast            Contrast
	ReducedMotion       ReducedMotion
	ReducedTransparency ReducedTransparency
	AccentColor         AccentColor
	DoubleClickInterval DoubleClickInterval
}

// DefaultPreferences returns the snapshot used before the platform reported
// anything: every field at its no-preference value.
func DefaultPreferences() Preferences {
	return Preferences{}
}

// Mask returns a copy where every category outside interest is reset to its
// default.
func (p Preferences) Mask(interest Interest) Preferences {
	var out Preferences
	if interest.Has(InterestColorScheme) {
		out.ColorScheme = p.ColorScheme
	}
	if interest.Has(InterestContrast) {
		out.Contrast = p.Contrast
	}
	if interest.Has(InterestReducedMotion) {
		out.ReducedMotion = p.ReducedMotion
	}
	if interest.Has(InterestReducedTransparency) {
		out.ReducedTransparency = p.ReducedTransparency
	}
	if interest.Has(InterestAccentColor) {
		out.AccentColor = p.AccentColor
	}
	if interest.Has(InterestDoubleClickInterval) {
		out.DoubleClickInterval = p.DoubleClickInterval
	}
	return out
}

func (p Preferences) String() string {
	return fmt.Sprintf(
		"color_scheme=%s contrast=%s reduced_motion=%s reduced_transparency=%s accent_color=%s double_click_interval=%s",
		p.ColorScheme, p.Contrast, p.ReducedMotion, p.ReducedTransparency, p.AccentColor, p.DoubleClickInterval,
	)
}

const (
	noPreference = "no-preference"
	reduce       = "reduce"
)

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
}
