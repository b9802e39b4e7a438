package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cwilhelm/gridiron/internal/app"
	"github.com/cwilhelm/gridiron/internal/domain/matchup"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStats exposes service statistics for monitoring.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Stats())
}

// handleMatchup serves the latest scoreboard snapshot. A missing snapshot
// means the first refresh has not completed; ambiguous matchup state (bye or
// unscheduled week) gets its own code so the client can explain it instead
// of showing a generic fetch error.
func (s *Server) handleMatchup(w http.ResponseWriter, r *http.Request) {
	board, err := s.deps.Scoreboard(r.Context())
	switch {
	case errors.Is(err, app.ErrNoSnapshot):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
		return
	case errors.Is(err, matchup.ErrMatchupNotFound), errors.Is(err, matchup.ErrIncompleteGroup):
		writeError(w, http.StatusNotFound, "no_matchup", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// handlePlayer serves the per-player detail view.
func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	detail, err := s.deps.PlayerDetail(r.Context(), playerID)
	switch {
	case errors.Is(err, app.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "player_not_found", err)
		return
	case errors.Is(err, app.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
