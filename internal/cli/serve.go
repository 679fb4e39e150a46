package cli

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/blobposter/internal/config"
	"github.com/matzehuels/blobposter/internal/metrics"
	"github.com/matzehuels/blobposter/internal/web"
	"github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/observability"
)

// serveFlags holds flag values for the serve command.
type serveFlags struct {
	config        string
	listen        string
	metrics       bool
	metricsListen string
}

// serveCommand creates the serve command for the browser UI.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the browser UI",
		Long: `Run the browser UI and JSON API.

Settings are read from the config file (default: $XDG_CONFIG_HOME/blobposter/config.toml),
then BLOBPOSTER_* environment variables, then flags.`,
		Example: `  # Serve on the default address
  blobposter serve

  # Listen on all interfaces with metrics on a separate port
  blobposter serve --listen :8501 --metrics-listen :9100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveServeConfig(cmd, flags)
			if err != nil {
				return err
			}
			if !c.verbose {
				c.SetLogLevel(cfg.LogLevel())
			}
			return c.serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "config file path")
	cmd.Flags().StringVarP(&flags.listen, "listen", "l", config.DefaultListen, "address for the browser UI")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "expose Prometheus metrics at /metrics")
	cmd.Flags().StringVar(&flags.metricsListen, "metrics-listen", "", "serve metrics on a separate address")

	return cmd
}

// resolveServeConfig loads the config and applies flags the user set
// explicitly.
func resolveServeConfig(cmd *cobra.Command, flags serveFlags) (config.Config, error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return cfg, err
	}
	fs := cmd.Flags()
	if fs.Changed("listen") {
		cfg.Listen = flags.listen
	}
	if fs.Changed("metrics") {
		cfg.Metrics = flags.metrics
	}
	if fs.Changed("metrics-listen") {
		cfg.MetricsListen = flags.metricsListen
	}
	return cfg, cfg.Validate()
}

// serve runs the UI server, and the metrics server when configured, until
// ctx is canceled or either server fails.
func (c *CLI) serve(ctx context.Context, cfg config.Config) error {
	logger := loggerFromContext(ctx)

	opts := []web.Option{
		web.WithLogger(logger),
		web.WithDefaults(cfg.PipelineOptions()),
	}

	var metricsHandler http.Handler
	if cfg.MetricsEnabled() {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(registry)
		observability.SetPosterHooks(m)
		observability.SetHTTPHooks(m)
		defer observability.Reset()

		metricsHandler = metrics.Handler(registry)
		if cfg.MetricsListen == "" {
			opts = append(opts, web.WithMetrics(metricsHandler))
		}
	}

	ui := web.NewHTTPServer(cfg.Listen, web.NewServer(c.newRunner(), opts...).Handler())
	if err := ui.Start(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "start server")
	}
	uiAddr := ui.ListenAddr()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ui.Run(gctx) })

	c.printSuccess("Serving posters at %s", StyleLink.Render("http://"+uiAddr))
	c.printKeyValue("palette", cfg.Poster.Palette)
	c.printKeyValue("style", cfg.Poster.Style)

	if cfg.MetricsListen != "" {
		mux := chi.NewRouter()
		mux.Method(http.MethodGet, "/metrics", metricsHandler)
		ms := web.NewHTTPServer(cfg.MetricsListen, mux)
		if err := ms.Start(); err != nil {
			_ = ui.Stop()
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "start metrics server")
		}
		c.printKeyValue("metrics", "http://"+ms.ListenAddr()+"/metrics")
		g.Go(func() error { return ms.Run(gctx) })
	} else if metricsHandler != nil {
		c.printKeyValue("metrics", "http://"+uiAddr+"/metrics")
	}
	c.printInfo("%s", StyleDim.Render("Press Ctrl+C to stop"))

	prog := newProgress(logger)
	err := g.Wait()
	prog.done("Server stopped")
	return err
}
