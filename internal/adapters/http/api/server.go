// Package api declares the HTTP read surface consumed by the browser
// dashboard. It serializes the views the service assembles and adds no
// reconciliation logic of its own.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cwilhelm/gridiron/internal/domain/types"
	"github.com/cwilhelm/gridiron/pkg/metrics"
)

// Dependencies bundles what the handlers need from the service layer.
type Dependencies interface {
	Scoreboard(ctx context.Context) (types.Scoreboard, error)
	PlayerDetail(ctx context.Context, playerID string) (types.PlayerDetail, error)
	Stats() map[string]interface{}
}

// Server wires the HTTP routes for the dashboard API.
type Server struct {
	deps Dependencies
}

// NewServer creates a new API server.
func NewServer(deps Dependencies) *Server {
	return &Server{deps: deps}
}

// Router builds the chi router with CORS for the browser client and the
// metrics endpoint on the custom registry.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", instrument("healthz", s.handleHealth))
	r.Get("/stats", instrument("stats", s.handleStats))
	r.Get("/api/matchup", instrument("matchup", s.handleMatchup))
	r.Get("/api/players/{playerID}", instrument("player", s.handlePlayer))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
