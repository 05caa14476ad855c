// Package cli wires configuration, the layout loader and the status poller
// into the parkmap commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"parkmap/internal/config"
	"parkmap/internal/layout"
	"parkmap/internal/logger"
	"parkmap/internal/metrics"
	"parkmap/internal/status"
)

var (
	cfg     config.Config
	envFile string
	canvas  string
	margin  float64
)

var rootCmd = &cobra.Command{
	Use:   "parkmap [layout]",
	Short: "Parking slot occupancy over a GeoJSON layout",
	Long: `parkmap draws a hand-authored parking layout (a GeoJSON FeatureCollection
with one Polygon or MultiPolygon per slot) and colours each slot by the live
status polled from a JSON feed.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			cfg.Layout = args[0]
		}
		return runTUI(cmd.Context())
	},
	SilenceUsage:  true,
}

func Execute() {
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	d := config.Default()
	f := rootCmd.PersistentFlags()
	f.StringVar(&envFile, "env-file", ".env", "Environment file to load")
	f.StringVar(&cfg.Layout, "layout", d.Layout, "Layout file or URL (PARKMAP_LAYOUT)")
	f.StringVar(&cfg.StatusURL, "status-url", "", "Live status feed URL (PARKMAP_STATUS_URL)")
	f.DurationVar(&cfg.PollInterval, "interval", d.PollInterval, "Status poll interval (PARKMAP_POLL_INTERVAL)")
	f.DurationVar(&cfg.HTTPTimeout, "timeout", d.HTTPTimeout, "HTTP request timeout (PARKMAP_HTTP_TIMEOUT)")
	f.StringVar(&canvas, "canvas", "1200x520", "Drawing surface WIDTHxHEIGHT (PARKMAP_CANVAS)")
	f.Float64Var(&margin, "margin", d.Canvas.Margin, "Drawing surface margin (PARKMAP_MARGIN)")
}

// loadConfig reads .env and the environment, then lets explicitly set
// flags win.
func loadConfig(cmd *cobra.Command) error {
	fromEnv, err := config.Load(envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("layout") {
		cfg.Layout = fromEnv.Layout
	}
	if !flags.Changed("status-url") {
		cfg.StatusURL = fromEnv.StatusURL
	}
	if !flags.Changed("interval") {
		cfg.PollInterval = fromEnv.PollInterval
	}
	if !flags.Changed("timeout") {
		cfg.HTTPTimeout = fromEnv.HTTPTimeout
	}
	cfg.Canvas = fromEnv.Canvas
	if flags.Changed("canvas") {
		w, h, err := config.ParseSize(canvas)
		if err != nil {
			return fmt.Errorf("--canvas: %w", err)
		}
		cfg.Canvas.Width, cfg.Canvas.Height = w, h
	}
	if flags.Changed("margin") {
		cfg.Canvas.Margin = margin
	}
	if !flags.Changed("listen") {
		cfg.Listen = fromEnv.Listen
	}
	cfg.LogFile = fromEnv.LogFile
	cfg.Map = fromEnv.Map
	return nil
}

func httpClient() *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

// loadLayout loads the configured layout and counts the outcome.
func loadLayout(ctx context.Context, src string) (*layout.Collection, error) {
	c, err := layout.Load(ctx, src, httpClient())
	if err != nil {
		metrics.LayoutLoadsTotal.WithLabelValues("error").Inc()
		logger.L().Error("layout_load_error", "src", src, "err", err)
		return nil, err
	}
	metrics.LayoutLoadsTotal.WithLabelValues("ok").Inc()
	logger.L().Debug("layout_load_ok", "src", src, "features", len(c.Features))
	return c, nil
}

// fetchOnce polls the feed a single time. Without a feed the lookup is empty.
func fetchOnce(ctx context.Context, p *status.Poller) status.Lookup {
	if p == nil {
		return status.Lookup{}
	}
	r := p.Poll(ctx)
	if !r.OK() {
		return status.Lookup{}
	}
	return r.Lookup
}

func newPoller(l *slog.Logger) *status.Poller {
	if cfg.StatusURL == "" {
		return nil
	}
	return &status.Poller{
		Source:   status.NewClient(cfg.StatusURL, cfg.HTTPTimeout),
		Interval: cfg.PollInterval,
		Logger:   l,
	}
}
