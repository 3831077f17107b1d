package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sysprefs/internal/domain/entity"
)

const labelWidth = 22

// PreferencesRenderer renders preference snapshots.
type PreferencesRenderer struct {
	theme *Theme
}

// NewPreferencesRenderer creates a new preferences renderer with the given theme.
func NewPreferencesRenderer(theme *Theme) *PreferencesRenderer {
	return &PreferencesRenderer{theme: theme}
}

type prefRow struct {
	flag  entity.Interest
	label string
	value func(entity.Preferences) string
}

var prefRows = []prefRow{
	{entity.InterestColorScheme, "Color scheme", func(p entity.Preferences) string { return p.ColorScheme.String() }},
	{entity.InterestContrast, "Contrast", func(p entity.Preferences) string { return p.Contrast.String() }},
	{entity.InterestReducedMotion, "Reduced motion", func(p entity.Preferences) string { return p.ReducedMotion.String() }},
	{entity.InterestReducedTransparency, "Reduced transparency", func(p entity.Preferences) string {
		return p.ReducedTransparency.String()
	}},
	{entity.InterestAccentColor, "Accent color", func(p entity.Preferences) string { return p.AccentColor.String() }},
	{entity.InterestDoubleClickInterval, "Double-click interval", func(p entity.Preferences) string {
		return p.DoubleClickInterval.String()
	}},
}

// RenderRows renders one line per category. Categories outside interest
// are shown as not watched.
func (r *PreferencesRenderer) RenderRows(prefs entity.Preferences, interest entity.Interest) string {
	labelStyle := r.theme.Subtle.Width(labelWidth)
	valueStyle := r.theme.Highlight

	lines := make([]string, 0, len(prefRows))
	for _, row := range prefRows {
		var value string
		switch {
		case !interest.Has(row.flag):
			value = r.theme.Subtle.Italic(true).Render("not watched")
		case row.flag == entity.InterestAccentColor && prefs.AccentColor.Valid:
			value = r.renderAccent(prefs.AccentColor.Color)
		default:
			value = valueStyle.Render(row.value(prefs))
		}
		lines = append(lines, labelStyle.Render(row.label)+value)
	}
	return strings.Join(lines, "\n")
}

// Render renders the snapshot in a titled box.
func (r *PreferencesRenderer) Render(prefs entity.Preferences, interest entity.Interest) string {
	header := r.theme.BoxHeader.Render(IconDesktop + " System preferences")
	return r.theme.Box.Render(lipgloss.JoinVertical(lipgloss.Left, header, r.RenderRows(prefs, interest)))
}

// renderAccent draws a swatch in the accent color itself, then its hex value.
func (r *PreferencesRenderer) renderAccent(c entity.Color) string {
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(opaqueHex(c))).Render(Swatch)
	return swatch + " " + r.theme.Highlight.Render(c.Hex())
}

// RenderLine renders a plain, unstyled change line for logs and pipes.
func (*PreferencesRenderer) RenderLine(at time.Time, prefs entity.Preferences) string {
	return fmt.Sprintf("%s %s", at.Format(time.TimeOnly), prefs)
}

// RenderStatus renders the publish counter and tick count.
func (r *PreferencesRenderer) RenderStatus(version, ticks uint64) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("%s %s",
		iconStyle.Render(IconClock),
		r.theme.Subtle.Render(fmt.Sprintf("%d updates published, %d ticks", version, ticks)),
	)
}

// RenderTimeout renders the warning shown when nothing was published in time.
func (r *PreferencesRenderer) RenderTimeout(timeout time.Duration) string {
	return fmt.Sprintf("%s %s",
		r.theme.WarningStyle.Render(IconWarning),
		r.theme.WarningStyle.Render(fmt.Sprintf("no preferences reported within %s, showing defaults", timeout)),
	)
}

// RenderClosed renders the relay closed error.
func (r *PreferencesRenderer) RenderClosed(err error) string {
	return fmt.Sprintf("%s %s",
		r.theme.ErrorStyle.Render(IconX),
		r.theme.ErrorStyle.Render(fmt.Sprintf("preferences will no longer update: %v", err)),
	)
}
