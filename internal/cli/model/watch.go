// Package model holds the Bubble Tea models of the sysprefs CLI.
package model

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sysprefs/internal/application/usecase"
	"github.com/bnema/sysprefs/internal/cli/styles"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/infrastructure/platform"
	"github.com/bnema/sysprefs/internal/logging"
	"github.com/bnema/sysprefs/internal/ui/mainloop"
)

// Ticker runs one host tick.
type Ticker interface {
	Tick(ctx context.Context) error
}

// PreferenceView is the read side of the preferences plugin.
type PreferenceView interface {
	Preferences() entity.Preferences
	Version() uint64
	Interest() entity.Interest
	Closed() bool
}

// WatchModelConfig configures the watch view.
type WatchModelConfig struct {
	Interval time.Duration
	Sources  []platform.SourceStatus
}

// WatchModel shows the live preference snapshot. Each Bubble Tea tick runs
// one host tick, so the plugin's Update happens on the UI goroutine.
type WatchModel struct {
	help help.Model
	keys styles.WatchKeyMap

	prefs       entity.Preferences
	version     uint64
	ticks       uint64
	closedErr   error
	showHelp    bool
	showSources bool

	ctx      context.Context
	loop     Ticker
	plugin   PreferenceView
	interval time.Duration
	sources  []platform.SourceStatus
	theme    *styles.Theme
	renderer *styles.PreferencesRenderer
}

type tickMsg time.Time

// NewWatchModel creates a watch model.
func NewWatchModel(ctx context.Context, loop Ticker, plugin PreferenceView, cfg WatchModelConfig) WatchModel {
	logging.FromContext(ctx).Debug().Dur("interval", cfg.Interval).Msg("creating watch model")

	m := WatchModel{
		keys:     styles.DefaultWatchKeyMap(),
		prefs:    plugin.Preferences(),
		ctx:      ctx,
		loop:     loop,
		plugin:   plugin,
		interval: cfg.Interval,
		sources:  cfg.Sources,
	}
	m.applyTheme()
	return m
}

// applyTheme rebuilds the styles from the current snapshot so the view
// follows the preferences it displays.
func (m *WatchModel) applyTheme() {
	m.theme = styles.NewTheme(m.prefs)
	m.renderer = styles.NewPreferencesRenderer(m.theme)
	m.help = styles.NewStyledHelp(m.theme)
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return m.tick()
}

func (m WatchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m WatchModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Sources):
		m.showSources = !m.showSources
	}
	return m, nil
}

func (m WatchModel) handleTick() (tea.Model, tea.Cmd) {
	err := m.loop.Tick(m.ctx)
	m.ticks++

	if v := m.plugin.Version(); v != m.version {
		m.version = v
		m.prefs = m.plugin.Preferences()
		m.applyTheme()
	}

	if m.plugin.Closed() {
		m.closedErr = usecase.ErrRelayClosed
		return m, tea.Quit
	}
	if errors.Is(err, mainloop.ErrStopLoop) {
		return m, tea.Quit
	}
	return m, m.tick()
}

// Preferences returns the snapshot currently displayed.
func (m WatchModel) Preferences() entity.Preferences {
	return m.prefs
}

// Err returns the error that ended the view, if any.
func (m WatchModel) Err() error {
	return m.closedErr
}

// View implements tea.Model.
func (m WatchModel) View() string {
	t := m.theme

	parts := []string{
		m.renderer.Render(m.prefs, m.plugin.Interest()),
		m.renderer.RenderStatus(m.version, m.ticks),
	}

	if m.showSources {
		if len(m.sources) == 0 {
			parts = append(parts, t.Subtle.Render("single source, nothing to merge"))
		} else {
			parts = append(parts, styles.NewSourceTable(t, m.sources).View())
		}
	}

	if m.closedErr != nil {
		parts = append(parts, m.renderer.RenderClosed(m.closedErr))
	}

	if m.showHelp {
		parts = append(parts, m.help.View(m.keys))
	} else {
		parts = append(parts, t.Subtle.Render("? for help • q to quit"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}
