package styles_test

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sysprefs/internal/cli/styles"
	"github.com/bnema/sysprefs/internal/domain/build"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/infrastructure/platform"
)

func TestNewTheme_FollowsPreferences(t *testing.T) {
	dark := styles.NewTheme(entity.DefaultPreferences())
	assert.Equal(t, lipgloss.Color(styles.DarkPalette().Background), dark.Background)

	light := styles.NewTheme(entity.Preferences{ColorScheme: entity.ColorSchemeLight})
	assert.Equal(t, lipgloss.Color(styles.LightPalette().Background), light.Background)

	accented := styles.NewTheme(entity.Preferences{
		AccentColor: entity.AccentColor{Color: entity.Color{R: 1, A: 0.5}, Valid: true},
	})
	assert.Equal(t, lipgloss.Color("#ff0000"), accented.Accent)

	contrast := styles.NewTheme(entity.Preferences{Contrast: entity.ContrastMore})
	assert.Equal(t, contrast.Text, contrast.Muted)
}

func TestPreferencesRenderer_RenderRows(t *testing.T) {
	r := styles.NewPreferencesRenderer(styles.NewTheme(entity.DefaultPreferences()))
	prefs := entity.Preferences{
		ColorScheme:         entity.ColorSchemeDark,
		AccentColor:         entity.AccentColor{Color: entity.Color{R: 0, G: 0, B: 1, A: 1}, Valid: true},
		DoubleClickInterval: entity.DoubleClickInterval{Duration: 400 * time.Millisecond, Valid: true},
	}

	out := r.RenderRows(prefs, entity.InterestAll&^entity.InterestContrast)

	assert.Contains(t, out, "Color scheme")
	assert.Contains(t, out, "dark")
	assert.Contains(t, out, "#0000ff")
	assert.Contains(t, out, styles.Swatch)
	assert.Contains(t, out, "400ms")
	assert.Contains(t, out, "not watched")
}

func TestPreferencesRenderer_Render(t *testing.T) {
	r := styles.NewPreferencesRenderer(styles.NewTheme(entity.DefaultPreferences()))

	out := r.Render(entity.DefaultPreferences(), entity.InterestAll)

	assert.Contains(t, out, "System preferences")
	assert.Contains(t, out, "no-preference")
	assert.Contains(t, out, "none")
}

func TestPreferencesRenderer_Messages(t *testing.T) {
	r := styles.NewPreferencesRenderer(styles.NewTheme(entity.DefaultPreferences()))

	at := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	line := r.RenderLine(at, entity.Preferences{ColorScheme: entity.ColorSchemeLight})
	assert.Equal(t, "15:04:05 "+entity.Preferences{ColorScheme: entity.ColorSchemeLight}.String(), line)

	assert.Contains(t, r.RenderTimeout(2*time.Second), "2s")
	assert.Contains(t, r.RenderClosed(errors.New("stream ended")), "stream ended")
	assert.Contains(t, r.RenderStatus(3, 10), "3 updates published, 10 ticks")
}

func TestVersionRenderer(t *testing.T) {
	r := styles.NewVersionRenderer(styles.NewTheme(entity.DefaultPreferences()))

	out := r.Render(build.Info{Version: "v1.2.3", Commit: "abc123", BuildDate: "today", GoVersion: "go1.25"})

	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, build.RepoURL())
}

func TestConfigRenderer(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme(entity.DefaultPreferences()))

	assert.Contains(t, r.RenderPath("/tmp/sysprefs/config.toml", false), "not created yet")
	assert.Contains(t, r.RenderPath("/tmp/sysprefs/config.toml", true), "config.toml")
	assert.Contains(t, r.RenderSchemaWritten("/tmp/schema.json"), "/tmp/schema.json")
	assert.Contains(t, r.RenderError(errors.New("boom")), "boom")
}

func TestSourceTable(t *testing.T) {
	rows := styles.SourceTableRows([]platform.SourceStatus{
		{Name: "portal", Priority: 100, Available: true},
		{Name: "env", Priority: 20},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"portal", "100", "yes"}, []string(rows[0]))
	assert.Equal(t, []string{"env", "20", "no"}, []string(rows[1]))

	view := styles.NewSourceTable(styles.NewTheme(entity.DefaultPreferences()), nil).View()
	assert.Contains(t, view, "Source")
}
