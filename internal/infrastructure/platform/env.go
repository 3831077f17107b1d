package platform

import (
	"context"
	"os"
	"strings"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
)

const (
	sourceNameEnv = "GTK_THEME"
	priorityEnv   = 20
)

// Compile-time interface check.
var _ port.PreferenceSource = (*EnvSource)(nil)

// EnvSource derives the color scheme from the GTK_THEME environment variable.
// This is useful when users explicitly set their theme via environment.
type EnvSource struct {
	getenv func(string) string
}

// NewEnvSource creates a new environment variable-based source.
func NewEnvSource() *EnvSource {
	return &EnvSource{getenv: os.Getenv}
}

// Name implements port.PreferenceSource.
func (*EnvSource) Name() string {
	return sourceNameEnv
}

// Priority implements port.PreferenceSource.
func (*EnvSource) Priority() int {
	return priorityEnv
}

// Available implements port.PreferenceSource.
// Returns true if GTK_THEME environment variable is set.
func (e *EnvSource) Available(context.Context) bool {
	return e.getenv("GTK_THEME") != ""
}

// Subscribe implements port.PreferenceSource. The environment cannot change
// under a running process, so the single snapshot is held until ctx ends.
func (e *EnvSource) Subscribe(ctx context.Context, interest entity.Interest) (<-chan port.RawPreferences, error) {
	var raw port.RawPreferences
	if interest.Has(entity.InterestColorScheme) {
		raw.ColorScheme = colorSchemeFromTheme(e.getenv("GTK_THEME"))
	}
	return holdSource(ctx, raw), nil
}

// colorSchemeFromTheme maps a theme name like "Adwaita:dark" to a scheme.
// Any theme not mentioning dark counts as light.
func colorSchemeFromTheme(theme string) port.RawColorScheme {
	if theme == "" {
		return port.RawColorSchemeNoPreference
	}
	if strings.Contains(strings.ToLower(theme), "dark") {
		return port.RawColorSchemeDark
	}
	return port.RawColorSchemeLight
}
