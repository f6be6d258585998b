package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/bitspect/pkg/config"
	"github.com/ssargent/bitspect/pkg/di"
	"github.com/ssargent/bitspect/pkg/logging"
)

type contextKey string

const configKey contextKey = "config"

var container *di.Container

// SetContainer injects the dependency container used by the commands
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bitspect",
	Short: "bitspect - broadcast bitstream record inspector",
	Long: `bitspect decodes bit-packed records from broadcast streams into
labelled field trees: DVB extension descriptors (including the VVC
subpictures descriptor) and H.264/H.265/H.266 SEI messages.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		logger := logging.New(cfg.Logging, cmd.ErrOrStderr())
		ctx := context.WithValue(cmd.Context(), configKey, cfg)
		cmd.SetContext(logging.WithLogger(ctx, logger))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/bitspect/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: text or json")
}

// resolveConfig loads the config named by --config, or the default file
// when it exists, and applies flag overrides.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")
	output, _ := cmd.Flags().GetString("output")

	cfg := config.DefaultConfig()
	switch {
	case configPath != "":
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case config.ConfigExists(config.GetDefaultConfigPath()):
		loaded, err := config.LoadConfig(config.GetDefaultConfigPath())
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if output != "" {
		cfg.Decode.Output = output
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// configFrom returns the config resolved by the root command
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

func loggerFrom(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
