// Package cmd provides Cobra CLI commands for sysprefs.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/sysprefs/internal/cli"
	"github.com/bnema/sysprefs/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	rootCmd    = &cobra.Command{
		Use:   "sysprefs",
		Short: "Read the desktop's appearance and accessibility preferences",
		Long: `sysprefs - system preferences as one live snapshot.

Reads the color scheme, contrast, reduced motion, reduced transparency,
accent color and double-click interval from the platform and keeps them
up to date.

Sources:
  - XDG Settings portal over D-Bus (Linux)
  - gsettings and GTK_THEME fallbacks (GNOME)
  - Windows registry
  - [preferences.overrides] in the config file

Use 'sysprefs show' for a one-shot read, 'sysprefs watch' to follow changes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs":
				return nil
			}

			var err error
			app, err = cli.NewApp(configFile)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default $XDG_CONFIG_HOME/sysprefs/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
