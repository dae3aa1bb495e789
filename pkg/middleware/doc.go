// Package middleware provides HTTP middleware for the htmlattrs service.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//
// Both follow the net/http middleware signature used by chi:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("htmlattrs"))
//
//	r := chi.NewRouter()
//	r.Use(m.Handler)
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("htmlattrs")))
//	r.Handle("/metrics", promhttp.Handler())
//
// # Prometheus Metrics
//
// Metrics collected:
//   - htmlattrs_requests_total: requests by route and status class
//   - htmlattrs_request_duration_seconds: request duration by route
//   - htmlattrs_attributes_parsed_total: attributes produced by parsing
//   - htmlattrs_fragments_skipped_total: malformed fragments dropped by parsing
//
// # OpenTelemetry
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Handlers can decorate the request span with
// trace.SpanFromContext(r.Context()).
package middleware
