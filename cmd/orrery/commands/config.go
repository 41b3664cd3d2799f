package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/orrery/config"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration orrery would run with: the defaults, overlaid
by the --config file and the ORRERY_SDL_PATH environment variable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := config.Format(configFormat)
		if f != config.FormatTOML && f != config.FormatYAML {
			return fmt.Errorf("unknown format %q (want toml or yaml)", configFormat)
		}
		return config.Encode(cmd.OutOrStdout(), f, loaded)
	},
}

func init() {
	configCmd.Flags().StringVarP(&configFormat, "format", "f", string(config.FormatTOML), "output format: toml or yaml")
	rootCmd.AddCommand(configCmd)
}
