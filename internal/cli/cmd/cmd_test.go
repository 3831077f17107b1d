package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/application/usecase"
	"github.com/bnema/sysprefs/internal/bootstrap"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/infrastructure/config"
	"github.com/bnema/sysprefs/internal/infrastructure/platform"
	"github.com/bnema/sysprefs/internal/ui/mainloop"
)

const testTick = 2 * time.Millisecond

// delayedSource reports raw after delay, then holds the stream open.
type delayedSource struct {
	delay time.Duration
	raw   port.RawPreferences
}

func (*delayedSource) Name() string                   { return "delayed" }
func (*delayedSource) Priority() int                  { return 100 }
func (*delayedSource) Available(context.Context) bool { return true }

func (d *delayedSource) Subscribe(ctx context.Context, _ entity.Interest) (<-chan port.RawPreferences, error) {
	out := make(chan port.RawPreferences)
	go func() {
		defer close(out)
		select {
		case <-time.After(d.delay):
		case <-ctx.Done():
			return
		}
		select {
		case out <- d.raw:
		case <-ctx.Done():
			return
		}
		<-ctx.Done()
	}()
	return out, nil
}

func TestWaitForPreferences_FirstSnapshot(t *testing.T) {
	ctx := context.Background()
	src, err := fakeSource("dark")
	require.NoError(t, err)

	plugin := bootstrap.NewPreferencesPluginWithSource(src)
	require.NoError(t, plugin.Start(ctx))
	defer plugin.Close()

	prefs, ok := waitForPreferences(ctx, plugin, testTick, 2*time.Second)

	assert.True(t, ok)
	assert.Equal(t, entity.ColorSchemeDark, prefs.ColorScheme)
}

func TestWaitForPreferences_SlowPlatformBehindOverrides(t *testing.T) {
	ctx := context.Background()
	resolver := platform.NewResolver()
	resolver.RegisterSource(&delayedSource{
		delay: 30 * time.Millisecond,
		raw:   port.RawPreferences{ColorScheme: port.RawColorSchemeDark},
	})
	resolver.RegisterSource(platform.NewOverrideSource(config.OverridesConfig{}))

	plugin := bootstrap.NewPreferencesPluginWithSource(resolver)
	require.NoError(t, plugin.Start(ctx))
	defer plugin.Close()

	prefs, ok := waitForPreferences(ctx, plugin, testTick, 2*time.Second)
	require.True(t, ok)
	assert.Equal(t, entity.ColorSchemeDark, prefs.ColorScheme)
}

func TestWaitForPreferences_Timeout(t *testing.T) {
	ctx := context.Background()
	silent := platform.NewStaticSource("silent", 0)
	silent.Hold = true

	plugin := bootstrap.NewPreferencesPluginWithSource(silent)
	require.NoError(t, plugin.Start(ctx))
	defer plugin.Close()

	prefs, ok := waitForPreferences(ctx, plugin, testTick, 20*time.Millisecond)

	assert.False(t, ok)
	assert.Equal(t, entity.DefaultPreferences(), prefs)
}

func TestWaitForPreferences_RelayClosedWithoutData(t *testing.T) {
	ctx := context.Background()
	plugin := bootstrap.NewPreferencesPluginWithSource(platform.NewStaticSource("empty", 0))
	require.NoError(t, plugin.Start(ctx))
	defer plugin.Close()

	start := time.Now()
	_, ok := waitForPreferences(ctx, plugin, testTick, 2*time.Second)

	assert.False(t, ok)
	assert.True(t, plugin.Closed())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFakeSource(t *testing.T) {
	_, err := fakeSource("purple")
	require.Error(t, err)

	src, err := fakeSource("LIGHT")
	require.NoError(t, err)
	assert.Equal(t, "fake", src.Name())
}

func TestInterestOptions(t *testing.T) {
	opts, err := interestOptions("")
	require.NoError(t, err)
	assert.Empty(t, opts)

	opts, err = interestOptions("color-scheme,contrast")
	require.NoError(t, err)
	plugin := bootstrap.NewPreferencesPluginWithSource(platform.NewStaticSource("x", 0), opts...)
	assert.Equal(t, (entity.InterestColorScheme|entity.InterestContrast)&entity.CompiledInterest, plugin.Interest())

	_, err = interestOptions("colour")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	prefs := entity.Preferences{
		ColorScheme:         entity.ColorSchemeDark,
		AccentColor:         entity.AccentColor{Color: entity.Color{R: 1, A: 1}, Valid: true},
		DoubleClickInterval: entity.DoubleClickInterval{Duration: 500 * time.Millisecond, Valid: true},
	}

	require.NoError(t, writeJSON(&buf, prefs, entity.InterestColorScheme, nil))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "dark", got["color_scheme"])
	assert.Equal(t, "no-preference", got["contrast"])
	assert.Equal(t, "#ff0000", got["accent_color"])
	assert.InDelta(t, 500, got["double_click_interval_ms"], 0)
	assert.Equal(t, []any{"color-scheme"}, got["interest"])
	assert.NotContains(t, got, "sources")
}

func TestWriteJSON_AbsentValuesAreNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, entity.DefaultPreferences(), entity.InterestAll, nil))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Contains(t, got, "accent_color")
	assert.Nil(t, got["accent_color"])
	assert.Nil(t, got["double_click_interval_ms"])
}

func TestRunWatchPlain_PrintsChangesUntilClosed(t *testing.T) {
	ctx := context.Background()
	src := platform.NewStaticSource("steps", 0,
		port.RawPreferences{ColorScheme: port.RawColorSchemeLight},
		port.RawPreferences{ColorScheme: port.RawColorSchemeDark},
	)
	plugin := bootstrap.NewPreferencesPluginWithSource(src)
	loop := mainloop.New(testTick)
	plugin.Install(loop, nil)
	require.NoError(t, plugin.Start(ctx))
	defer plugin.Close()

	var out bytes.Buffer
	err := runWatchPlain(ctx, &out, loop, plugin)

	require.ErrorIs(t, err, usecase.ErrRelayClosed)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[len(lines)-1], "color_scheme=dark")
}

func TestRunWatchPlain_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src, err := fakeSource("light")
	require.NoError(t, err)

	plugin := bootstrap.NewPreferencesPluginWithSource(src)
	loop := mainloop.New(testTick)
	plugin.Install(loop, nil)
	// The relay outlives the loop so cancelling only stops printing.
	require.NoError(t, plugin.Start(context.Background()))
	defer plugin.Close()

	time.AfterFunc(30*time.Millisecond, cancel)

	var out bytes.Buffer
	require.NoError(t, runWatchPlain(ctx, &out, loop, plugin))
	assert.Contains(t, out.String(), "color_scheme=light")
}

func TestRunWatchPlain_InterruptAfterRelayClosedIsNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src, err := fakeSource("dark")
	require.NoError(t, err)

	plugin := bootstrap.NewPreferencesPluginWithSource(src)
	loop := mainloop.New(testTick)
	plugin.Install(loop, nil)
	// Sharing ctx means the interrupt also ends the held subscription.
	require.NoError(t, plugin.Start(ctx))
	defer plugin.Close()

	cancel()
	require.Eventually(t, func() bool {
		_ = plugin.Update(context.Background())
		return plugin.Closed()
	}, 2*time.Second, time.Millisecond)

	var out bytes.Buffer
	assert.NoError(t, runWatchPlain(ctx, &out, loop, plugin))
}
