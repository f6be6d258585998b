package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ssargent/bitspect/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file holding the default settings, ready to edit.

Examples:
  bitspect init
  bitspect init --config ./bitspect.yaml --force`,
	// An existing but broken config must not stop init from replacing it.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		return runInit(cmd.OutOrStdout(), configPath, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

func runInit(w io.Writer, configPath string, force bool) error {
	if config.ConfigExists(configPath) && !force {
		return fmt.Errorf("config already exists at %s, use --force to overwrite", configPath)
	}
	if err := config.SaveConfig(config.DefaultConfig(), configPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "Configuration written to %s\n", configPath)
	return nil
}
