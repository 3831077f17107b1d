package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/bootstrap"
	"github.com/bnema/sysprefs/internal/cli/styles"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/infrastructure/platform"
	"github.com/bnema/sysprefs/internal/ui/mainloop"
)

const defaultShowTimeout = 2 * time.Second

var (
	showTimeout time.Duration
	showJSON    bool
	showFake    string
	showOnly    string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current system preferences",
	Long: `Start the preference pipeline, wait for the first snapshot and print it.

If nothing is reported before the timeout, the defaults are printed with a
warning.

Examples:
  sysprefs show                         # Styled output
  sysprefs show --json                  # Machine readable
  sysprefs show --only color-scheme     # Watch a single category
  sysprefs show --fake dark             # Skip the platform, report dark`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().DurationVar(&showTimeout, "timeout", defaultShowTimeout, "how long to wait for the platform")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print JSON")
	showCmd.Flags().StringVar(&showFake, "fake", "", "report a fixed color scheme instead of reading the platform (dark, light)")
	showCmd.Flags().StringVar(&showOnly, "only", "", "comma separated categories to watch (default: all compiled in)")
}

func runShow(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	opts, err := interestOptions(showOnly)
	if err != nil {
		return err
	}

	var plugin *bootstrap.PreferencesPlugin
	if showFake != "" {
		src, fakeErr := fakeSource(showFake)
		if fakeErr != nil {
			return fakeErr
		}
		plugin = bootstrap.NewPreferencesPluginWithSource(src, opts...)
	} else {
		plugin = bootstrap.NewPreferencesPlugin(ctx, app.Config, opts...)
	}

	if err := plugin.Start(ctx); err != nil {
		return fmt.Errorf("start preferences: %w", err)
	}
	defer plugin.Close()

	prefs, ok := waitForPreferences(ctx, plugin, app.Config.Preferences.TickInterval, showTimeout)

	out := cmd.OutOrStdout()
	if showJSON {
		return writeJSON(out, prefs, plugin.Interest(), plugin.Sources(ctx))
	}

	renderer := styles.NewPreferencesRenderer(styles.NewTheme(prefs))
	if !ok {
		fmt.Fprintln(out, renderer.RenderTimeout(showTimeout))
	}
	fmt.Fprintln(out, renderer.Render(prefs, plugin.Interest()))
	return nil
}

// waitForPreferences ticks until the first snapshot is published, the relay
// closes or timeout passes. ok is false when nothing was published.
func waitForPreferences(
	ctx context.Context,
	plugin *bootstrap.PreferencesPlugin,
	tick, timeout time.Duration,
) (prefs entity.Preferences, ok bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	loop := mainloop.New(tick)
	plugin.Install(loop, nil)
	loop.AddSystem("show", func(context.Context) error {
		if plugin.Version() > 0 || plugin.Closed() {
			return mainloop.ErrStopLoop
		}
		return nil
	})

	_ = loop.Run(ctx)
	return plugin.Preferences(), plugin.Version() > 0
}

// interestOptions turns --only into plugin options.
func interestOptions(only string) ([]bootstrap.PluginOption, error) {
	if only == "" {
		return nil, nil
	}
	interest, unknown := entity.ParseInterest(only)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown categories %v (valid: %s)", unknown, entity.InterestAll)
	}
	return []bootstrap.PluginOption{bootstrap.WithInterest(interest)}, nil
}

// fakeSource reports a fixed color scheme.
func fakeSource(scheme string) (*platform.StaticSource, error) {
	var raw port.RawPreferences
	switch entity.ParseColorScheme(scheme) {
	case entity.ColorSchemeDark:
		raw.ColorScheme = port.RawColorSchemeDark
	case entity.ColorSchemeLight:
		raw.ColorScheme = port.RawColorSchemeLight
	default:
		return nil, fmt.Errorf("--fake must be dark or light, got %q", scheme)
	}

	src := platform.NewStaticSource("fake", 0, raw)
	src.Hold = true
	return src, nil
}

type preferencesJSON struct {
	ColorScheme           string                  `json:"color_scheme"`
	Contrast              string                  `json:"contrast"`
	ReducedMotion         string                  `json:"reduced_motion"`
	ReducedTransparency   string                  `json:"reduced_transparency"`
	AccentColor           *string                 `json:"accent_color"`
	DoubleClickIntervalMs *int64                  `json:"double_click_interval_ms"`
	Interest              []string                `json:"interest"`
	Sources               []platform.SourceStatus `json:"sources,omitempty"`
}

func writeJSON(w io.Writer, prefs entity.Preferences, interest entity.Interest, sources []platform.SourceStatus) error {
	doc := preferencesJSON{
		ColorScheme:         prefs.ColorScheme.String(),
		Contrast:            prefs.Contrast.String(),
		ReducedMotion:       prefs.ReducedMotion.String(),
		ReducedTransparency: prefs.ReducedTransparency.String(),
		Interest:            interest.Categories(),
		Sources:             sources,
	}
	if prefs.AccentColor.Valid {
		hex := prefs.AccentColor.Color.Hex()
		doc.AccentColor = &hex
	}
	if prefs.DoubleClickInterval.Valid {
		ms := prefs.DoubleClickInterval.Duration.Milliseconds()
		doc.DoubleClickIntervalMs = &ms
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
