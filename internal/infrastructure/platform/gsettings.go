package platform

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
)

const (
	sourceNameGsettings = "gsettings"
	priorityGsettings   = 10
)

// commandRunner runs a command and returns its stdout.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Compile-time interface check.
var _ port.PreferenceSource = (*GsettingsSource)(nil)

// GsettingsSource polls GNOME gsettings. It is the fallback for sessions
// without a working Settings portal.
type GsettingsSource struct {
	interval time.Duration
	run      commandRunner
	lookPath func(string) (string, error)
}

// NewGsettingsSource creates a gsettings source polling every interval.
func NewGsettingsSource(interval time.Duration) *GsettingsSource {
	return &GsettingsSource{
		interval: interval,
		run:      execRunner,
		lookPath: exec.LookPath,
	}
}

// Name implements port.PreferenceSource.
func (*GsettingsSource) Name() string {
	return sourceNameGsettings
}

// Priority implements port.PreferenceSource.
func (*GsettingsSource) Priority() int {
	return priorityGsettings
}

// Available implements port.PreferenceSource.
// Returns true if gsettings command is available.
func (g *GsettingsSource) Available(context.Context) bool {
	_, err := g.lookPath("gsettings")
	return err == nil
}

// Subscribe implements port.PreferenceSource.
func (g *GsettingsSource) Subscribe(ctx context.Context, interest entity.Interest) (<-chan port.RawPreferences, error) {
	return pollSource(ctx, g.interval, func(ctx context.Context) port.RawPreferences {
		return g.read(ctx, interest)
	}), nil
}

func (g *GsettingsSource) read(ctx context.Context, interest entity.Interest) port.RawPreferences {
	var raw port.RawPreferences

	if interest.Has(entity.InterestColorScheme) {
		if v, ok := g.get(ctx, nsInterface, keyColorScheme); ok {
			raw.ColorScheme = parseGsettingsColorScheme(v)
		}
	}
	if interest.Has(entity.InterestContrast) {
		if v, ok := g.get(ctx, nsA11y, keyHighContrast); ok && v == "true" {
			raw.Contrast = port.RawContrastMore
		}
	}
	if interest.Has(entity.InterestReducedMotion) {
		if v, ok := g.get(ctx, nsInterface, keyEnableAnimations); ok && v == "false" {
			raw.ReducedMotion = port.RawReducedMotionReduce
		}
	}
	if interest.Has(entity.InterestAccentColor) {
		if v, ok := g.get(ctx, nsInterface, keyAccentColor); ok {
			raw.AccentColor = accentFromName(v)
		}
	}
	if interest.Has(entity.InterestDoubleClickInterval) {
		if v, ok := g.get(ctx, nsMouse, keyDoubleClick); ok {
			raw.DoubleClickInterval = parseGsettingsMillis(v)
		}
	}

	return raw
}

// get queries one key. Output is like "'prefer-dark'\n"; quotes and
// whitespace are stripped.
func (g *GsettingsSource) get(ctx context.Context, schema, key string) (string, bool) {
	output, err := g.run(ctx, "gsettings", "get", schema, key)
	if err != nil {
		return "", false
	}
	result := strings.TrimSpace(string(output))
	result = strings.Trim(result, "'\"")
	return result, true
}

func parseGsettingsColorScheme(v string) port.RawColorScheme {
	switch v {
	case "prefer-dark":
		return port.RawColorSchemeDark
	case "prefer-light":
		return port.RawColorSchemeLight
	default:
		// "default" means follow the system, which gsettings can't tell us.
		return port.RawColorSchemeNoPreference
	}
}

// parseGsettingsMillis parses "400" or "int32 400".
func parseGsettingsMillis(v string) *time.Duration {
	v = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), "int32"))
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return nil
	}
	return durationPtr(time.Duration(ms) * time.Millisecond)
}
