package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlattrs/pkg/middleware"
	"github.com/vango-dev/htmlattrs/pkg/service"
)

func serveCmd(a *app) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the attribute formatting HTTP service",
		Long: `Serve the parse and format endpoints over HTTP.

Endpoints:
  POST /v1/parse    normalize attributes
  POST /v1/format   edit and escape attributes
  GET  /healthz     liveness probe
  GET  /metrics     Prometheus metrics (when metrics.enabled is set)

Examples:
  htmlattrs serve
  htmlattrs serve --port 9000 --charset UTF-8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				a.cfg.Serve.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Serve.Port = port
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host to bind to (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides config)")

	return cmd
}

// newService builds the service from the loaded configuration.
func newService(a *app, registry prometheus.Registerer, gatherer prometheus.Gatherer) *service.Service {
	svcConfig := service.Config{
		Charset:    a.charset,
		Logger:     a.logger,
		Tracing:    a.cfg.Tracing.Enabled,
		TracerName: a.cfg.Tracing.TracerName,
	}
	if a.cfg.Metrics.Enabled {
		svcConfig.Metrics = middleware.NewMetrics(
			middleware.WithNamespace(a.cfg.Metrics.Namespace),
			middleware.WithRegistry(registry),
		)
		svcConfig.Gatherer = gatherer
	}
	return service.New(svcConfig)
}

func runServe(ctx context.Context, a *app) error {
	svc := newService(a, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	a.success("Serving attributes on http://%s", a.cfg.ServeAddress())
	return svc.ListenAndServe(ctx, a.cfg.ServeAddress())
}
