// Package server exposes the race reports and a passthrough of the upstream
// timing API over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/s0up4200/pitwall/filter"
	"github.com/s0up4200/pitwall/openf1"
	"github.com/s0up4200/pitwall/report"
	"github.com/s0up4200/pitwall/telemetry"
)

const (
	proxyCacheControl = "public, s-maxage=30, stale-while-revalidate=300"
	shutdownTimeout   = 10 * time.Second
)

// Reports builds the reports the API serves
type Reports interface {
	Summarize(ctx context.Context, raceKey string, opts report.SummaryOptions) (*report.RaceSummary, error)
	LapDeltas(ctx context.Context, driverID string, opts report.DeltaOptions) (*report.DriverLapDelta, error)
}

// Server is the HTTP API
type Server struct {
	reports        Reports
	fetcher        openf1.Fetcher
	presets        *filter.Presets
	formatter      *report.TextFormatter
	allowedOrigins []string
	logger         zerolog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithAllowedOrigins sets the CORS origins. The default allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// New creates a new Server. fetcher backs the upstream passthrough and
// presets resolves lap filters by name; nil presets still allows inline
// filter expressions.
func New(reports Reports, fetcher openf1.Fetcher, presets *filter.Presets, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		reports:        reports,
		fetcher:        fetcher,
		presets:        presets,
		formatter:      report.NewTextFormatter(),
		allowedOrigins: []string{"*"},
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.presets == nil {
		// an empty preset set cannot fail to compile
		s.presets, _ = filter.NewPresets(filter.NewExprCompiler(filter.WithCache(filter.DefaultCacheSize)), nil)
	}
	return s
}

// Handler returns the routed handler with CORS and request logging applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/races/{id}/summary", s.handleSummary)
	mux.HandleFunc("GET /api/drivers/{id}/lap-deltas", s.handleLapDeltas)
	mux.HandleFunc("GET /api/openf1/{resource}", s.handleProxy)

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return s.logRequests(c.Handler(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve is ListenAndServe on an existing listener
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", listener.Addr().String()).Msg("Starting HTTP server")
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	tokens := append([]string{query.Get("sessionTypes")}, query["session_type"]...)
	tokens = append(tokens, query["sessionType"]...)
	opts := report.SummaryOptions{SessionTypes: telemetry.ParseSessionTypes(tokens...)}

	summary, err := s.reports.Summarize(r.Context(), r.PathValue("id"), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if query.Get("format") == "text" {
		writeText(w, s.formatter.FormatSummary(summary))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleLapDeltas(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lapFilter, err := s.presets.Resolve(query.Get("filter"), query.Get("preset"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	opts := report.DeltaOptions{
		Year:       parseInt(query.Get("year")),
		Season:     parseInt(query.Get("season")),
		RaceKey:    firstNonEmpty(query.Get("race_key"), query.Get("raceKey")),
		SessionKey: firstNonEmpty(query.Get("session_key"), query.Get("sessionKey")),
	}

	deltas, err := s.reports.LapDeltas(r.Context(), r.PathValue("id"), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if lapFilter != nil {
		deltas = filter.Apply(lapFilter, deltas)
	}

	if query.Get("format") == "text" {
		writeText(w, s.formatter.FormatLapDeltas(deltas))
		return
	}
	writeJSON(w, http.StatusOK, deltas)
}

func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	resource := r.PathValue("resource")
	if !lo.Contains(openf1.Resources, resource) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown resource " + resource})
		return
	}

	filters := make(openf1.Filters)
	for key, values := range r.URL.Query() {
		switch len(values) {
		case 0:
		case 1:
			filters[key] = values[0]
		default:
			filters[key] = values
		}
	}

	records, err := s.fetcher.Fetch(r.Context(), resource, filters)
	if err != nil {
		s.logger.Warn().Err(err).Str("resource", resource).Msg("Proxy fetch failed")
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
		return
	}

	w.Header().Set("Cache-Control", proxyCacheControl)
	if records == nil {
		records = []openf1.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps report errors onto status codes: missing data is 404, any
// upstream failure 502, everything else 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		upstreamErr  *openf1.UpstreamError
		transportErr *openf1.TransportError
		status       = http.StatusInternalServerError
	)
	switch {
	case errors.Is(err, report.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &upstreamErr), errors.As(err, &transportErr):
		status = http.StatusBadGateway
	}

	if status != http.StatusNotFound {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// parseInt reads an optional integer parameter; anything unparseable is
// treated as absent.
func parseInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func firstNonEmpty(values ...string) string {
	v, _ := lo.Find(values, func(s string) bool { return s != "" })
	return v
}
