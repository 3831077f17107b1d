package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/sysprefs/internal/application/usecase"
	"github.com/bnema/sysprefs/internal/bootstrap"
	"github.com/bnema/sysprefs/internal/cli/model"
	"github.com/bnema/sysprefs/internal/cli/styles"
	"github.com/bnema/sysprefs/internal/logging"
	"github.com/bnema/sysprefs/internal/ui/mainloop"
)

var (
	watchPlain bool
	watchOnly  string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow system preference changes",
	Long: `Keep the preference pipeline running and show every change.

The interactive view follows the preferences it displays: it switches to a
light palette and adopts the accent color as soon as the system does.
Edits to [preferences.overrides] in the config file apply live.

Examples:
  sysprefs watch            # Interactive view
  sysprefs watch --plain    # One line per change, for scripts and logs`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchPlain, "plain", false, "print one line per change instead of the interactive view")
	watchCmd.Flags().StringVar(&watchOnly, "only", "", "comma separated categories to watch (default: all compiled in)")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !watchPlain {
		// Log lines would tear the interactive view.
		ctx = logging.WithContext(ctx, app.ViewLogger())
	}
	log := logging.FromContext(ctx)

	opts, err := interestOptions(watchOnly)
	if err != nil {
		return err
	}

	plugin := bootstrap.NewPreferencesPlugin(ctx, app.Config, opts...)
	loop := mainloop.New(app.Config.Preferences.TickInterval)
	plugin.Install(loop, app.ConfigManager)

	if watchErr := app.ConfigManager.Watch(); watchErr != nil {
		log.Warn().Err(watchErr).Msg("config hot reload disabled")
	}

	if err := plugin.Start(ctx); err != nil {
		return fmt.Errorf("start preferences: %w", err)
	}
	defer plugin.Close()

	if watchPlain {
		return runWatchPlain(ctx, cmd.OutOrStdout(), loop, plugin)
	}

	m := model.NewWatchModel(ctx, loop, plugin, model.WatchModelConfig{
		Interval: app.Config.Preferences.TickInterval,
		Sources:  plugin.Sources(ctx),
	})
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("watch view: %w", err)
	}
	if ctx.Err() != nil {
		return nil
	}
	if wm, ok := final.(model.WatchModel); ok && wm.Err() != nil {
		return wm.Err()
	}
	return nil
}

// runWatchPlain prints one line per published snapshot until ctx ends or
// the relay closes.
func runWatchPlain(ctx context.Context, out io.Writer, loop *mainloop.Loop, plugin *bootstrap.PreferencesPlugin) error {
	renderer := styles.NewPreferencesRenderer(styles.NewTheme(plugin.Preferences()))

	var seen uint64
	loop.AddSystem("print", func(context.Context) error {
		if v := plugin.Version(); v != seen {
			seen = v
			fmt.Fprintln(out, renderer.RenderLine(time.Now(), plugin.Preferences()))
		}
		if plugin.Closed() {
			return mainloop.ErrStopLoop
		}
		return nil
	})

	err := loop.Run(ctx)
	switch {
	case ctx.Err() != nil:
		// An interrupt also ends the subscription; that is not a relay failure.
		return nil
	case plugin.Closed():
		return usecase.ErrRelayClosed
	case errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}
