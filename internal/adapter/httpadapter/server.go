package httpadapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/sun-table-etl/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxTableBytes bounds the request body of POST /v1/tables.
const maxTableBytes = 1 << 20

// Server exposes health, readiness, metrics and on-demand table parsing.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and
// POST /v1/tables routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/tables", s.handleParseTable)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type entryJSON struct {
	Key     string `json:"key"`
	Date    string `json:"date"`
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

type tableResponse struct {
	Year    int         `json:"year"`
	Entries []entryJSON `json:"entries"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleParseTable(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTableBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sharedobs.WriteJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error(), Kind: "request_too_large"})
			return
		}
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "bad_request"})
		return
	}

	rs, err := domain.ParseTable(domain.SplitLines(string(body)))
	if err != nil {
		kind := domain.ErrorKind(err)
		s.logger.Info("table rejected", "error", err, "kind", kind)
		sharedobs.WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: kind})
		return
	}

	resp := tableResponse{Year: rs.Year(), Entries: make([]entryJSON, 0, rs.Len())}
	for _, e := range rs.Entries() {
		resp.Entries = append(resp.Entries, entryJSON{
			Key:     e.Key,
			Date:    e.Date.Format(time.DateOnly),
			Sunrise: e.Sunrise,
			Sunset:  e.Sunset,
		})
	}
	sharedobs.WriteJSON(w, http.StatusOK, resp)
}
