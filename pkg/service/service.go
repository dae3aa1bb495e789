package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/htmlattrs/internal/errors"
	"github.com/vango-dev/htmlattrs/pkg/attrs"
	"github.com/vango-dev/htmlattrs/pkg/charset"
	"github.com/vango-dev/htmlattrs/pkg/middleware"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Config configures the service.
type Config struct {
	// Charset is used when a request names none. Nil means the process default.
	Charset *charset.Charset

	// Logger receives request and parse logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics records request and parse metrics. Nil disables them.
	Metrics *middleware.Metrics

	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	// Tracing enables the OpenTelemetry middleware.
	Tracing bool

	// TracerName is the tracer name used when Tracing is set.
	TracerName string

	// TracerProvider overrides the global tracer provider.
	TracerProvider trace.TracerProvider
}

// Service handles attribute requests.
type Service struct {
	config Config
	logger *slog.Logger
	router chi.Router
}

// New creates a Service and builds its router.
func New(config Config) *Service {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		config: config,
		logger: logger.With("component", "service"),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the service.
func (s *Service) Handler() http.Handler {
	return s.router
}

func (s *Service) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if s.config.Metrics != nil {
		r.Use(s.config.Metrics.Handler)
	}
	if s.config.Tracing {
		opts := []middleware.OTelOption{
			middleware.WithRequestFilter(func(r *http.Request) bool {
				return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
			}),
		}
		if s.config.TracerName != "" {
			opts = append(opts, middleware.WithTracerName(s.config.TracerName))
		}
		if s.config.TracerProvider != nil {
			opts = append(opts, middleware.WithTracerProvider(s.config.TracerProvider))
		}
		r.Use(middleware.OpenTelemetry(opts...))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if s.config.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/format", s.handleFormat)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Service) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.New("E141").Wrap(err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// Request is the body of /v1/parse and /v1/format.
type Request struct {
	// Input is a markup-style attribute string.
	Input string `json:"input,omitempty"`

	// Attributes are named attributes merged after Input.
	Attributes map[string]string `json:"attributes,omitempty"`

	// Booleans are boolean attributes merged after Attributes.
	Booleans []string `json:"booleans,omitempty"`

	// Update is a markup-style string merged last (format only).
	Update string `json:"update,omitempty"`

	// Remove lists attributes to delete (format only).
	Remove []string `json:"remove,omitempty"`

	// Charset overrides the output charset (format only).
	Charset string `json:"charset,omitempty"`
}

// ParseResponse is returned by /v1/parse.
type ParseResponse struct {
	Attributes attrs.Attrs `json:"attributes"`
	Skipped    []string    `json:"skipped"`
}

// FormatResponse is returned by /v1/format.
type FormatResponse struct {
	HTML string `json:"html"`

	// Charset is the canonical name, e.g. "UTF-8" for the label "utf8".
	Charset string `json:"charset"`
}

func (s *Service) handleParse(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	store, skipped := s.build(r.Context(), req, nil)
	writeJSON(w, http.StatusOK, ParseResponse{
		Attributes: store.All(),
		Skipped:    skipped,
	})
}

func (s *Service) handleFormat(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	cs := s.config.Charset
	if req.Charset != "" {
		var err error
		if cs, err = charset.Lookup(req.Charset); err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
	}

	store, _ := s.build(r.Context(), req, cs)
	if req.Update != "" {
		store.Update(attrs.Raw(req.Update))
	}
	for _, name := range req.Remove {
		store.Remove(name)
	}

	writeJSON(w, http.StatusOK, FormatResponse{
		HTML:    store.String(),
		Charset: store.Charset().Name(),
	})
}

// build creates the request's store from Input, Attributes and Booleans.
func (s *Service) build(ctx context.Context, req *Request, cs *charset.Charset) (*attrs.Store, []string) {
	skipped := []string{}
	logger := s.logger.With("request_id", chimw.GetReqID(ctx))

	opts := []attrs.Option{
		attrs.WithLogger(logger),
		attrs.OnSkip(func(frag string) { skipped = append(skipped, frag) }),
	}
	if cs != nil {
		opts = append(opts, attrs.WithCharset(cs))
	}

	store := attrs.New(attrs.Raw(req.Input), opts...)
	if len(req.Attributes) > 0 {
		store.Update(attrs.Map(req.Attributes))
	}
	if len(req.Booleans) > 0 {
		store.Update(attrs.List(req.Booleans))
	}

	s.config.Metrics.RecordParse(store.Len(), len(skipped))
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("htmlattrs.attribute_count", store.Len()),
		attribute.Int("htmlattrs.skipped_count", len(skipped)),
	)

	return store, skipped
}

func (s *Service) decode(w http.ResponseWriter, r *http.Request) (*Request, bool) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.logger.Debug("malformed request", "error", err)
		s.writeError(w, r, http.StatusBadRequest, errors.New("E140").Wrap(err).WithDetail(err.Error()))
		return nil, false
	}
	return &req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError logs err and returns it to the client as JSON.
func (s *Service) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	ae := errors.FromError(err, "E140")
	s.logger.Warn("request rejected",
		"request_id", chimw.GetReqID(r.Context()),
		"status", status,
		"error", ae.FormatCompact(),
	)
	writeJSON(w, status, ae)
}
