package platform

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
)

// fakeGsettings answers "gsettings get <schema> <key>" from a map.
type fakeGsettings struct {
	mu     sync.Mutex
	values map[string]string
	calls  int
}

func (f *fakeGsettings) set(schema, key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[schema+" "+key] = value
}

func (f *fakeGsettings) run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if name != "gsettings" || len(args) != 3 || args[0] != "get" {
		return nil, errors.New("unexpected command")
	}
	v, ok := f.values[args[1]+" "+args[2]]
	if !ok {
		return nil, errors.New("No such key")
	}
	return []byte(v + "\n"), nil
}

func newTestGsettings(values map[string]string) (*GsettingsSource, *fakeGsettings) {
	fake := &fakeGsettings{values: values}
	src := NewGsettingsSource(5 * time.Millisecond)
	src.run = fake.run
	src.lookPath = func(string) (string, error) { return "/usr/bin/gsettings", nil }
	return src, fake
}

func TestGsettingsSource_Read(t *testing.T) {
	src, _ := newTestGsettings(map[string]string{
		nsInterface + " " + keyColorScheme:      "'prefer-dark'",
		nsA11y + " " + keyHighContrast:          "true",
		nsInterface + " " + keyEnableAnimations: "false",
		nsInterface + " " + keyAccentColor:      "'teal'",
		nsMouse + " " + keyDoubleClick:          "int32 350",
	})

	raw := src.read(context.Background(), entity.InterestAll)

	assert.Equal(t, port.RawColorSchemeDark, raw.ColorScheme)
	assert.Equal(t, port.RawContrastMore, raw.Contrast)
	assert.Equal(t, port.RawReducedMotionReduce, raw.ReducedMotion)
	require.NotNil(t, raw.AccentColor)
	assert.InDelta(t, 0x21/255.0, raw.AccentColor.R, 1e-9)
	require.NotNil(t, raw.DoubleClickInterval)
	assert.Equal(t, 350*time.Millisecond, *raw.DoubleClickInterval)
}

func TestGsettingsSource_ReadOnlyInterested(t *testing.T) {
	src, fake := newTestGsettings(map[string]string{
		nsInterface + " " + keyColorScheme: "'prefer-light'",
		nsMouse + " " + keyDoubleClick:     "400",
	})

	raw := src.read(context.Background(), entity.InterestColorScheme)

	assert.Equal(t, port.RawColorSchemeLight, raw.ColorScheme)
	assert.Nil(t, raw.DoubleClickInterval)
	assert.Equal(t, 1, fake.calls)
}

func TestGsettingsSource_MissingKeysDegrade(t *testing.T) {
	src, _ := newTestGsettings(map[string]string{})

	raw := src.read(context.Background(), entity.InterestAll)

	assert.True(t, rawEqual(port.RawPreferences{}, raw))
}

func TestGsettingsSource_SubscribeEmitsOnChangeOnly(t *testing.T) {
	src, fake := newTestGsettings(map[string]string{
		nsInterface + " " + keyColorScheme: "'prefer-light'",
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := src.Subscribe(ctx, entity.InterestColorScheme)
	require.NoError(t, err)

	first := <-stream
	assert.Equal(t, port.RawColorSchemeLight, first.ColorScheme)

	fake.set(nsInterface, keyColorScheme, "'prefer-dark'")

	select {
	case second := <-stream:
		assert.Equal(t, port.RawColorSchemeDark, second.ColorScheme)
	case <-time.After(2 * time.Second):
		t.Fatal("no update after change")
	}

	cancel()
	for range stream {
	}
}

func TestParseGsettingsHelpers(t *testing.T) {
	assert.Equal(t, port.RawColorSchemeNoPreference, parseGsettingsColorScheme("default"))
	assert.Nil(t, parseGsettingsMillis("int32 0"))
	assert.Nil(t, parseGsettingsMillis("abc"))
	d := parseGsettingsMillis(strings.Repeat(" ", 2) + "int32 250")
	require.NotNil(t, d)
	assert.Equal(t, 250*time.Millisecond, *d)
}

func TestGsettingsSource_Available(t *testing.T) {
	src := NewGsettingsSource(time.Second)
	src.lookPath = func(string) (string, error) { return "", errors.New("not found") }
	assert.False(t, src.Available(context.Background()))
}
