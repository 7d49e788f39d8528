// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes two endpoints under /daily:
//   - POST /daily/new         → start today's shared jumble
//   - GET  /daily/leaderboard → fastest completions for today (or ?date=)
//
// The jumble seed is derived from the date and salt, so every player gets
// the same letters on a given day. Completed daily rounds are written to
// the results database when one is configured.

package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocab/internal/daily"
	"github.com/robalobadob/vocab/internal/store"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

// handleDailyNew starts today's puzzle for the caller.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	s.startRound(w, r, daily.Seed(now, s.cfg.DailySalt), daily.DateKey(now))
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Results == nil {
		writeError(w, http.StatusNotFound, "results_disabled")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	}
	rows, err := s.cfg.Results.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}

// recordDaily persists a completed daily round. Failures are logged only.
func (s *Server) recordDaily(ctx context.Context, sid string, e store.Entry) {
	if s.cfg.Results == nil {
		return
	}
	err := s.cfg.Results.InsertResult(ctx, daily.Result{
		SessionID: sid,
		Date:      e.Daily,
		Target:    e.Session.TargetCount,
		Attempts:  e.Attempts,
		ElapsedMs: int(s.now().Sub(e.StartedAt).Milliseconds()),
	})
	if err != nil {
		log.Warn().Err(err).Str("date", e.Daily).Msg("record daily result")
	}
}
