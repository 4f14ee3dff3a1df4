package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oldg9516/ai-agents-stats/internal/logging"
	"github.com/oldg9516/ai-agents-stats/internal/pipeline"
	"github.com/oldg9516/ai-agents-stats/internal/server"
)

var (
	serveAddr    string
	serveRefresh string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve statistics over HTTP",
	Long: `Serve hosts the statistics API for dashboard polling.

Endpoints:
  GET /healthz           liveness check
  GET /api/v1/stats      one mode's statistics (mode, from, to, category)
  GET /api/v1/report     statistics plus the optional insight narrative

Example:
  agentstats serve --addr :8080
  agentstats serve --refresh "*/15 * * * *"`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveRefresh, "refresh", "", "cron expression for cache warming (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveRefresh != "" {
		cfg.Server.RefreshSpec = serveRefresh
	}

	log := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := pipeline.New(ctx, cfg, log.Entry)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	return server.New(p, cfg.Server, log).Start(ctx)
}
