//go:build windows

package platform

import (
	"context"

	"golang.org/x/sys/windows/registry"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
)

// Available implements port.PreferenceSource.
func (*RegistrySource) Available(context.Context) bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	_ = k.Close()
	return true
}

// Subscribe implements port.PreferenceSource.
func (r *RegistrySource) Subscribe(ctx context.Context, interest entity.Interest) (<-chan port.RawPreferences, error) {
	return pollSource(ctx, r.interval, func(context.Context) port.RawPreferences {
		return readRegistry(interest)
	}), nil
}

func readRegistry(interest entity.Interest) port.RawPreferences {
	var raw port.RawPreferences

	if interest.Has(entity.InterestColorScheme) {
		if v, ok := readDWORD(personalizeKey, "AppsUseLightTheme"); ok {
			raw.ColorScheme = colorSchemeFromLightTheme(v)
		}
	}
	if interest.Has(entity.InterestReducedTransparency) {
		if v, ok := readDWORD(personalizeKey, "EnableTransparency"); ok {
			raw.ReducedTransparency = reducedTransparencyFrom(v)
		}
	}
	if interest.Has(entity.InterestAccentColor) {
		if v, ok := readDWORD(dwmKey, "AccentColor"); ok {
			raw.AccentColor = parseABGR(uint32(v))
		}
	}
	if interest.Has(entity.InterestContrast) {
		if v, ok := readString(highContrastKey, "Flags"); ok {
			raw.Contrast = parseHighContrastFlags(v)
		}
	}
	if interest.Has(entity.InterestDoubleClickInterval) {
		if v, ok := readString(mouseKey, "DoubleClickSpeed"); ok {
			raw.DoubleClickInterval = parseMillis(v)
		}
	}

	return raw
}

func readDWORD(path, name string) (uint64, bool) {
	k, err := registry.OpenKey(registry.CURRENT_USER, path, registry.QUERY_VALUE)
	if err != nil {
		return 0, false
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue(name)
	if err != nil {
		return 0, false
	}
	return v, true
}

func readString(path, name string) (string, bool) {
	k, err := registry.OpenKey(registry.CURRENT_USER, path, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()

	v, _, err := k.GetStringValue(name)
	if err != nil {
		return "", false
	}
	return v, true
}
