package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/bitspect/pkg/api"
	"github.com/ssargent/bitspect/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP decode API",
	Long: `Start the bitspect decode API. Records posted as hex are decoded and
returned as JSON field trees; Prometheus metrics are served on /metrics.

Examples:
  bitspect serve
  bitspect serve --bind 0.0.0.0 --port 9200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd.Context())
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Server.Bind, _ = cmd.Flags().GetString("bind")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg, loggerFrom(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if container == nil {
		return errors.New("dependency container not initialized")
	}

	starter := container.GetServerFactory().CreateServerStarter()
	serverConfig := api.NewServerConfig(cfg)
	logger.Info("Serving decode API",
		slog.String("address", cfg.Server.Address()),
		slog.Int64("max_body_bytes", serverConfig.MaxBodyBytes),
	)
	return starter.StartServer(ctx, serverConfig, logger)
}
