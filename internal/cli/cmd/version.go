package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/sysprefs/internal/cli/styles"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Long:  `Display version, build info, repository URL and the preference categories compiled in.`,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print the version only")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if versionShort {
		fmt.Fprintln(cmd.OutOrStdout(), app.BuildInfo.Version)
		return nil
	}

	renderer := styles.NewVersionRenderer(app.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(app.BuildInfo))
	return nil
}
