package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ikdashboard/internal/config"
	"ikdashboard/internal/dashboard"
	"ikdashboard/internal/logger"
	"ikdashboard/internal/reports"
	"ikdashboard/internal/storage"
)

// DataSource is the dataset holder behind the dashboards
type DataSource interface {
	dashboard.Snapshotter
	LastError() error
}

// Server represents the dashboard HTTP server
type Server struct {
	Config  *config.Config
	Service *dashboard.Service
	Data    DataSource
	Pages   *reports.PageBuilder
	Files   *reports.FileGenerator
	Storage storage.StorageClient // nil disables exports

	exportMutex sync.Mutex
	log         *logger.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, svc *dashboard.Service, data DataSource, pages *reports.PageBuilder, store storage.StorageClient) *Server {
	return &Server{
		Config:  cfg,
		Service: svc,
		Data:    data,
		Pages:   pages,
		Files:   reports.NewFileGenerator(pages),
		Storage: store,
		log:     logger.GetGlobalLogger().WithComponent("server"),
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.HandleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/dashboards", s.HandleDashboards)
	mux.HandleFunc("GET /api/charts/{dashboard}", s.HandleChartSpec)
	mux.HandleFunc("GET /api/trade", s.HandleTradeSpec)
	mux.HandleFunc("POST /api/export", s.HandleExport)

	mux.HandleFunc("GET /charts/{file}", s.HandleChartFile)

	mux.HandleFunc("GET /exports", s.HandleListExports)
	mux.HandleFunc("GET /exports/{path...}", s.HandleExportFile)

	mux.HandleFunc("GET /{$}", s.HandleRoot)

	return withRequestContext(mux, s.log)
}

// Run serves until ctx is cancelled and then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Config.Port,
		Handler:           s.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server listening", map[string]interface{}{"addr": srv.Addr, "version": config.GetVersion()})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
