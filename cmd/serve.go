package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ikdashboard/internal/logger"
	"ikdashboard/internal/server"
	"ikdashboard/internal/storage"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboards over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

//nolint:gochecknoglobals // Cobra flag target
var servePort string

func runServe(ctx context.Context) error {
	log := logger.GetGlobalLogger().WithComponent("serve")
	if servePort != "" {
		cfg.Port = servePort
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	// A failed first load leaves the server up; pages answer 503 until a
	// scheduled reload succeeds.
	if err := a.store.Reload(ctx); err != nil {
		log.Error("Initial dataset load failed", err, map[string]interface{}{"source": cfg.IndicatorSource})
	}
	if err := a.store.Schedule(cfg.ReloadSchedule); err != nil {
		return err
	}
	defer a.store.Stop()

	var exports storage.StorageClient
	if client, err := storage.NewStorageClient(ctx, cfg); err != nil {
		log.Warn("Exports disabled", map[string]interface{}{"error": err.Error()})
	} else {
		exports = client
	}

	srv := server.NewServer(cfg, a.service, a.store, a.pages, exports)
	defer srv.Close()

	log.Info("Starting dashboard service", map[string]interface{}{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"indicators":  cfg.IndicatorSource,
		"trade":       cfg.TradeSource,
	})
	return srv.Run(ctx)
}
