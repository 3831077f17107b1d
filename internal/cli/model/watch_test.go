package model

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sysprefs/internal/application/usecase"
	"github.com/bnema/sysprefs/internal/cli/styles"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/infrastructure/platform"
	"github.com/bnema/sysprefs/internal/ui/mainloop"
)

type fakeLoop struct {
	ticks int
	err   error
}

func (f *fakeLoop) Tick(context.Context) error {
	f.ticks++
	return f.err
}

type fakePlugin struct {
	prefs   entity.Preferences
	version uint64
	closed  bool
}

func (f *fakePlugin) Preferences() entity.Preferences { return f.prefs }
func (f *fakePlugin) Version() uint64                 { return f.version }
func (f *fakePlugin) Interest() entity.Interest       { return entity.InterestAll }
func (f *fakePlugin) Closed() bool                    { return f.closed }

func newTestWatchModel(loop *fakeLoop, plugin *fakePlugin) WatchModel {
	return NewWatchModel(context.Background(), loop, plugin, WatchModelConfig{
		Interval: 10 * time.Millisecond,
		Sources:  []platform.SourceStatus{{Name: "portal", Priority: 100, Available: true}},
	})
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWatchModel_TickPicksUpNewSnapshot(t *testing.T) {
	loop := &fakeLoop{}
	plugin := &fakePlugin{}
	m := newTestWatchModel(loop, plugin)

	plugin.prefs = entity.Preferences{ColorScheme: entity.ColorSchemeLight}
	plugin.version = 1

	next, cmd := m.Update(tickMsg(time.Now()))
	wm := next.(WatchModel)

	assert.Equal(t, 1, loop.ticks)
	assert.Equal(t, entity.ColorSchemeLight, wm.Preferences().ColorScheme)
	require.NotNil(t, cmd)
	assert.Equal(t, styles.NewTheme(plugin.prefs).Background, wm.theme.Background)
	assert.Contains(t, wm.View(), "light")
}

func TestWatchModel_IgnoresUnchangedVersion(t *testing.T) {
	plugin := &fakePlugin{}
	m := newTestWatchModel(&fakeLoop{}, plugin)

	plugin.prefs = entity.Preferences{ColorScheme: entity.ColorSchemeDark}

	next, _ := m.Update(tickMsg(time.Now()))

	assert.Equal(t, entity.ColorSchemeNoPreference, next.(WatchModel).Preferences().ColorScheme)
}

func TestWatchModel_QuitsWhenRelayClosed(t *testing.T) {
	plugin := &fakePlugin{closed: true}
	m := newTestWatchModel(&fakeLoop{}, plugin)

	next, cmd := m.Update(tickMsg(time.Now()))
	wm := next.(WatchModel)

	assert.True(t, isQuit(t, cmd))
	assert.ErrorIs(t, wm.Err(), usecase.ErrRelayClosed)
	assert.Contains(t, wm.View(), "no longer update")
}

func TestWatchModel_QuitsOnStopLoop(t *testing.T) {
	m := newTestWatchModel(&fakeLoop{err: mainloop.ErrStopLoop}, &fakePlugin{})

	_, cmd := m.Update(tickMsg(time.Now()))

	assert.True(t, isQuit(t, cmd))
}

func TestWatchModel_Keys(t *testing.T) {
	m := newTestWatchModel(&fakeLoop{}, &fakePlugin{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Nil(t, cmd)
	wm := next.(WatchModel)
	assert.True(t, wm.showSources)
	assert.Contains(t, wm.View(), "portal")

	next, _ = wm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, next.(WatchModel).showHelp)

	_, cmd = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, isQuit(t, cmd))
}
