package platform

import (
	"math"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
)

func settingsOf(values map[[2]string]any) map[string]map[string]dbus.Variant {
	out := make(map[string]map[string]dbus.Variant)
	for k, v := range values {
		if out[k[0]] == nil {
			out[k[0]] = make(map[string]dbus.Variant)
		}
		out[k[0]][k[1]] = dbus.MakeVariant(v)
	}
	return out
}

func TestRawFromPortalSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings map[[2]string]any
		want     port.RawPreferences
	}{
		{
			name:     "nothing set",
			settings: nil,
			want:     port.RawPreferences{},
		},
		{
			name: "dark with double click",
			settings: map[[2]string]any{
				{nsAppearance, keyColorScheme}: uint32(1),
				{nsMouse, keyDoubleClick}:      int32(500),
			},
			want: port.RawPreferences{
				ColorScheme:         port.RawColorSchemeDark,
				DoubleClickInterval: durationPtr(500 * time.Millisecond),
			},
		},
		{
			name: "light, more contrast, animations off",
			settings: map[[2]string]any{
				{nsAppearance, keyColorScheme}:     uint32(2),
				{nsAppearance, keyContrast}:        uint32(1),
				{nsInterface, keyEnableAnimations}: false,
			},
			want: port.RawPreferences{
				ColorScheme:   port.RawColorSchemeLight,
				Contrast:      port.RawContrastMore,
				ReducedMotion: port.RawReducedMotionReduce,
			},
		},
		{
			name: "gnome high contrast used when portal contrast absent",
			settings: map[[2]string]any{
				{nsA11y, keyHighContrast}: true,
			},
			want: port.RawPreferences{Contrast: port.RawContrastMore},
		},
		{
			name: "portal contrast wins over gnome high contrast",
			settings: map[[2]string]any{
				{nsAppearance, keyContrast}: uint32(0),
				{nsA11y, keyHighContrast}:   true,
			},
			want: port.RawPreferences{},
		},
		{
			name: "unknown values and wrong types are unset",
			settings: map[[2]string]any{
				{nsAppearance, keyColorScheme}:     uint32(7),
				{nsInterface, keyEnableAnimations}: "nope",
				{nsMouse, keyDoubleClick}:          int32(-4),
			},
			want: port.RawPreferences{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rawFromPortalSettings(settingsOf(tt.settings))
			assert.True(t, rawEqual(tt.want, got), "want %+v got %+v", tt.want, got)
		})
	}
}

func TestRawFromPortalSettings_AccentColor(t *testing.T) {
	got := rawFromPortalSettings(settingsOf(map[[2]string]any{
		{nsAppearance, keyAccentColor}: []float64{0.2, 0.4, 0.6},
	}))
	require.NotNil(t, got.AccentColor)
	assert.Equal(t, port.RawColor{R: 0.2, G: 0.4, B: 0.6, A: 1}, *got.AccentColor)

	unset := rawFromPortalSettings(settingsOf(map[[2]string]any{
		{nsAppearance, keyAccentColor}: []float64{-1, -1, -1},
	}))
	assert.Nil(t, unset.AccentColor, "out of range means unset")
}

func TestRawFromPortalSettings_NestedVariant(t *testing.T) {
	settings := map[string]map[string]dbus.Variant{
		nsAppearance: {keyColorScheme: dbus.MakeVariant(dbus.MakeVariant(uint32(1)))},
	}
	assert.Equal(t, port.RawColorSchemeDark, rawFromPortalSettings(settings).ColorScheme)
}

func TestAccentFromTuple(t *testing.T) {
	assert.Equal(t, &port.RawColor{R: 1, G: 0, B: 0.5, A: 1}, accentFromTuple([]any{1.0, 0.0, 0.5}))
	assert.Nil(t, accentFromTuple([]any{1.0, "x", 0.5}))
	assert.Nil(t, accentFromTuple([]float64{0.1, 0.2}))
	assert.Nil(t, accentFromTuple(uint32(3)))
	assert.Nil(t, accentFromTuple([]float64{math.NaN(), 0.5, 0.5}))
}

func TestParseSettingChanged(t *testing.T) {
	sig := &dbus.Signal{
		Name: settingsInterface + ".SettingChanged",
		Body: []any{nsAppearance, keyColorScheme, dbus.MakeVariant(uint32(2))},
	}

	ns, key, value, ok := parseSettingChanged(sig)
	require.True(t, ok)
	assert.Equal(t, nsAppearance, ns)
	assert.Equal(t, keyColorScheme, key)
	assert.Equal(t, uint32(2), value.Value())

	_, _, _, ok = parseSettingChanged(&dbus.Signal{Name: "org.example.Other", Body: sig.Body})
	assert.False(t, ok)
	_, _, _, ok = parseSettingChanged(&dbus.Signal{Name: sig.Name, Body: []any{"only-one"}})
	assert.False(t, ok)
	_, _, _, ok = parseSettingChanged(nil)
	assert.False(t, ok)
}

func TestWatched_RespectsInterest(t *testing.T) {
	assert.True(t, watched(nsAppearance, keyColorScheme, entity.InterestColorScheme))
	assert.False(t, watched(nsAppearance, keyColorScheme, entity.InterestContrast))
	assert.True(t, watched(nsA11y, keyHighContrast, entity.InterestContrast))
	assert.False(t, watched(nsAppearance, "unknown-key", entity.InterestAll))
}
