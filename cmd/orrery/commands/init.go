package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agiangrant/orrery/config"
)

var (
	initPath  string
	initTitle string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file holding the defaults. The format follows the
file extension. The window title defaults to the current directory name.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initPath, "output", "o", "orrery.toml", "file to write (.toml, .yaml or .yml)")
	initCmd.Flags().StringVar(&initTitle, "title", "", "window title")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(initPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initPath)
	}

	cfg := config.Default()
	cfg.App.Title = initTitle
	if cfg.App.Title == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg.App.Title = filepath.Base(cwd)
	}

	if err := config.Save(initPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", initPath)
	return nil
}
