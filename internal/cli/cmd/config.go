package cmd

import (
	"fmt"

	"github.com/bnema/gamedesk/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var schemaWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		fmt.Fprintln(cmd.OutOrStdout(), app.Manager.ConfigFile())
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of config.toml",
	Long: `Print the JSON schema describing config.toml. With --write the schema is
saved next to the config file so editors can pick it up.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().BoolVar(&schemaWrite, "write", false, "write the schema next to config.toml")
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	if schemaWrite {
		var opts []config.Option
		if configDir != "" {
			opts = append(opts, config.WithConfigDir(configDir))
		}
		mgr, err := config.NewManager(opts...)
		if err != nil {
			return err
		}
		path, err := mgr.GenerateSchemaFile()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	schema, err := config.Schema()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(append(schema, '\n'))
	return err
}
