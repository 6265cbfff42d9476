package cmd

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"ikdashboard/internal/logger"
	"ikdashboard/internal/reports"
	"ikdashboard/internal/storage"
)

//nolint:gochecknoglobals // Cobra flag targets
var (
	renderQuery     string
	renderExportDir string
	renderBucket    string
)

//nolint:gochecknoglobals // Cobra commands are typically global
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a static snapshot of the dashboards",
	Long: `Loads the datasets once, renders the page, the chart images and the chart
data for one selection and stores them in a timestamped export folder.
The selection uses the same query syntax as the web page, for example
--query "year=2023&konjunktur=Umsatz,Index_Exporte&direction=Import".`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed("export-dir") {
			cfg.ExportDir = renderExportDir
		}
		if cmd.Flags().Changed("gcs-bucket") {
			cfg.GCSBucket = renderBucket
		}
		return runRender(cmd)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderQuery, "query", "", "dashboard selection as URL query string")
	renderCmd.Flags().StringVar(&renderExportDir, "export-dir", "", "local export directory (overrides EXPORT_DIR)")
	renderCmd.Flags().StringVar(&renderBucket, "gcs-bucket", "", "GCS bucket for the export (overrides GCS_BUCKET)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := logger.GetGlobalLogger().WithComponent("render")

	q, err := url.ParseQuery(renderQuery)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	if err := a.store.Reload(ctx); err != nil {
		return fmt.Errorf("%s%w", reports.LoadErrorPrefix, err)
	}

	ds, sel, err := a.service.Request(q)
	if err != nil {
		return err
	}
	specs, err := a.service.AllCharts(ds, sel)
	if err != nil {
		return err
	}

	files, err := reports.NewFileGenerator(a.pages).GenerateAllFiles(ds, sel, specs, time.Now().UTC())
	if err != nil {
		return err
	}

	client, err := storage.NewStorageClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	index, err := reports.NewStorageOrchestrator(client).StoreAllFiles(ctx, files)
	if err != nil {
		return err
	}

	log.Info("Snapshot rendered", map[string]interface{}{
		"location": client.Location(),
		"index":    index,
		"charts":   len(files.ChartFiles),
	})
	fmt.Fprintln(cmd.OutOrStdout(), index)
	return nil
}
