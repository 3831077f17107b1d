package usecase

import (
	"math"
	"time"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
)

// ConvertPreferences maps a raw platform snapshot onto the domain snapshot.
// It is total: unknown or missing platform values become the no-preference
// value. Categories outside interest are left at their defaults.
func ConvertPreferences(raw port.RawPreferences, interest entity.Interest) entity.Preferences {
	prefs := entity.Preferences{
		ColorScheme:         convertColorScheme(raw.ColorScheme),
		Contrast:            convertContrast(raw.Contrast),
		ReducedMotion:       convertReducedMotion(raw.ReducedMotion),
		ReducedTransparency: convertReducedTransparency(raw.ReducedTransparency),
		AccentColor:         convertAccentColor(raw.AccentColor),
		DoubleClickInterval: convertDoubleClickInterval(raw.DoubleClickInterval),
	}
	return prefs.Mask(interest)
}

func convertColorScheme(v port.RawColorScheme) entity.ColorScheme {
	switch v {
	case port.RawColorSchemeLight:
		return entity.ColorSchemeLight
	case port.RawColorSchemeDark:
		return entity.ColorSchemeDark
	default:
		return entity.ColorSchemeNoPreference
	}
}

func convertContrast(v port.RawContrast) entity.Contrast {
	switch v {
	case port.RawContrastMore:
		return entity.ContrastMore
	case port.RawContrastLess:
		return entity.ContrastLess
	case port.RawContrastCustom:
		return entity.ContrastCustom
	default:
		return entity.ContrastNoPreference
	}
}

func convertReducedMotion(v port.RawReducedMotion) entity.ReducedMotion {
	if v == port.RawReducedMotionReduce {
		return entity.ReducedMotionReduce
	}
	return entity.ReducedMotionNoPreference
}

func convertReducedTransparency(v port.RawReducedTransparency) entity.ReducedTransparency {
	if v == port.RawReducedTransparencyReduce {
		return entity.ReducedTransparencyReduce
	}
	return entity.ReducedTransparencyNoPreference
}

// convertAccentColor narrows each float64 channel to float32. A NaN channel
// would make the snapshot unequal to itself, so it maps to absent.
func convertAccentColor(c *port.RawColor) entity.AccentColor {
	if c == nil || math.IsNaN(c.R) || math.IsNaN(c.G) || math.IsNaN(c.B) || math.IsNaN(c.A) {
		return entity.AccentColor{}
	}
	return entity.AccentColor{
		Color: entity.Color{
			R: float32(c.R),
			G: float32(c.G),
			B: float32(c.B),
			A: float32(c.A),
		},
		Valid: true,
	}
}

func convertDoubleClickInterval(d *time.Duration) entity.DoubleClickInterval {
	if d == nil || *d < 0 {
		return entity.DoubleClickInterval{}
	}
	return entity.DoubleClickInterval{Duration: *d, Valid: true}
}
