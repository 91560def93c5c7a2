package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"cropsync/internal/api"
	"cropsync/internal/charts"
	"cropsync/internal/config"
	"cropsync/internal/dashboard"
	"cropsync/internal/engine"
	"cropsync/internal/export"
	"cropsync/internal/models"
	"cropsync/internal/render"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

type options struct {
	envFiles     []string
	cropPath     string
	rainfallPath string
	port         string

	// selections applied before render/export
	year   int
	period string

	renderDir  string
	format     string
	exportFile string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "cropsync",
		Short: "Agricultural statistics dashboard",
		Long: `cropsync loads crop area and rainfall datasets and serves a dashboard
whose charts recompute when a year, rainfall period or farmland scope is selected.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts)
		},
	}
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "env files to load (default: .env)")
	root.PersistentFlags().StringVar(&opts.cropPath, "crops", "", "crop dataset, .csv or .xlsx (env CROP_DATA_PATH)")
	root.PersistentFlags().StringVar(&opts.rainfallPath, "rainfall", "", "rainfall dataset, .csv or .xlsx (env RAINFALL_DATA_PATH)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts)
		},
	}
	serveCmd.Flags().StringVar(&opts.port, "port", "", "listen port (env PORT)")
	root.Flags().AddFlagSet(serveCmd.Flags())

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Write every chart as an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderAll(opts)
		},
	}
	renderCmd.Flags().StringVarP(&opts.renderDir, "out", "o", "charts", "output directory")
	renderCmd.Flags().StringVar(&opts.format, "format", "png", "image format: png or svg")
	addSelectionFlags(renderCmd, opts)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard data to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportWorkbook(opts)
		},
	}
	exportCmd.Flags().StringVarP(&opts.exportFile, "out", "o", "cropsync.xlsx", "output file")
	addSelectionFlags(exportCmd, opts)

	root.AddCommand(serveCmd, renderCmd, exportCmd)
	return root
}

func addSelectionFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().IntVar(&opts.year, "year", 0, "crop year (default: earliest)")
	cmd.Flags().StringVar(&opts.period, "period", "", "rainfall period: ANN, Jan-Feb, Mar-May, Jun-Sep, Oct-Dec")
}

// setup loads configuration and both datasets. A load failure stops the
// process before anything is served.
func setup(opts *options) (*config.Config, *dashboard.Dashboard, error) {
	config.LoadEnvFiles(opts.envFiles...)
	cfg := config.LoadConfig()
	if opts.cropPath != "" {
		cfg.CropDataPath = opts.cropPath
	}
	if opts.rainfallPath != "" {
		cfg.RainfallDataPath = opts.rainfallPath
	}
	if opts.port != "" {
		cfg.Port = opts.port
	}
	log.SetLevel(cfg.Level())
	log.SetHeader("${time_rfc3339} ${level} ${short_file}:${line}")

	store, err := engine.Load(cfg.CropDataPath, cfg.RainfallDataPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, dashboard.New(store, charts.DefaultPalette()), nil
}

// applySelections replays --year and --period as change events.
func applySelections(d *dashboard.Dashboard, opts *options) error {
	if opts.year != 0 {
		if _, err := d.Set(dashboard.InputYear, strconv.Itoa(opts.year)); err != nil {
			return err
		}
	}
	if opts.period != "" {
		if _, err := d.Set(dashboard.InputRainfall, opts.period); err != nil {
			return err
		}
	}
	return nil
}

func serve(opts *options) error {
	cfg, d, err := setup(opts)
	if err != nil {
		return err
	}
	defer d.Store().Release()

	e := api.NewServer(d, cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server ready on %s (%s)", cfg.Addr(), cfg.Environment)
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func renderAll(opts *options) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	_, d, err := setup(opts)
	if err != nil {
		return err
	}
	defer d.Store().Release()
	if err := applySelections(d, opts); err != nil {
		return err
	}

	if err := os.MkdirAll(opts.renderDir, 0755); err != nil {
		return err
	}
	for _, id := range dashboard.Outputs {
		def, err := d.Output(id)
		if err != nil {
			return err
		}
		path := filepath.Join(opts.renderDir, fmt.Sprintf("%s.%s", id, format))
		if err := writeChart(path, def, format); err != nil {
			if errors.Is(err, render.ErrEmptyChart) {
				log.Warnf("skipping %s: %v", id, err)
				continue
			}
			return fmt.Errorf("render %s: %w", id, err)
		}
		log.Infof("wrote %s", path)
	}
	return nil
}

func writeChart(path string, def *models.ChartDefinition, format render.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.Chart(f, def, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func exportWorkbook(opts *options) error {
	_, d, err := setup(opts)
	if err != nil {
		return err
	}
	defer d.Store().Release()
	if err := applySelections(d, opts); err != nil {
		return err
	}

	names := make([]string, len(dashboard.Outputs))
	for i, id := range dashboard.Outputs {
		names[i] = string(id)
	}
	f, err := export.Workbook(d.View(), names)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(opts.exportFile); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Infof("wrote %s", opts.exportFile)
	return nil
}
