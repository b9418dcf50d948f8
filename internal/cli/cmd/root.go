// Package cmd provides Cobra CLI commands for gamedesk.
package cmd

import (
	"fmt"
	"os"

	"github.com/bnema/gamedesk/internal/cli"
	"github.com/bnema/gamedesk/internal/domain/build"
	"github.com/bnema/gamedesk/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var (
	app       *cli.App
	buildInfo build.Info
	configDir string
	rootCmd   = &cobra.Command{
		Use:   "gamedesk",
		Short: "A desktop client for an indie game storefront",
		Long: `gamedesk hosts storefront pages in embedded browsing surfaces and keeps
a local library of installed games.

Use 'gamedesk run' to start the client, or explore the subcommands for
library and diagnostics operations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "classify", "schema":
				return nil
			}

			var opts []config.Option
			if configDir != "" {
				opts = append(opts, config.WithConfigDir(configDir))
			}
			var err error
			app, err = cli.NewApp(opts...)
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
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "read config.toml from this directory")
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

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
	rootCmd.Version = info.String()
}
