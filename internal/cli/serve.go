package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/plantforge/plantforge/internal/server"
	"github.com/plantforge/plantforge/pkg/cache"
	"github.com/plantforge/plantforge/pkg/observability/prom"
	"github.com/plantforge/plantforge/pkg/pipeline"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout, design and admin HTTP API",
		Long: `Serve the HTTP API.

Designs are stored in MongoDB when mongo_uri is configured, otherwise in
memory. Rendered artifacts are cached in Redis when redis_addr is
configured, otherwise in a bounded in-process cache. Prometheus metrics are
exposed on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.ListenAddr
			}

			svc, closeStore, err := c.newService(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			ch, err := c.newServeCache(cmd)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(ch, nil, c.Logger)
			defer runner.Close()

			cfg := server.Config{
				Designs:     svc,
				Runner:      runner,
				StylePolicy: c.Config.StylePolicy,
				Tuning:      c.Config.LayoutTuning(),
				Logger:      c.Logger,
			}
			if !noMetrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				prom.Register(reg)
				cfg.Gatherer = reg
			}

			return server.New(cfg).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: listen_addr from config, :8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")

	return cmd
}

// newServeCache returns Redis when configured, else an in-process LRU.
// The file cache is left to the CLI, which is a single short-lived process.
func (c *CLI) newServeCache(cmd *cobra.Command) (cache.Cache, error) {
	if c.Config.RedisAddr != "" {
		return c.newCache(cmd.Context(), false)
	}
	return cache.NewMemoryCache(memCacheEntries), nil
}
