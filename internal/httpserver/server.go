// internal/httpserver/server.go
//
// HTTP server wiring for the jumble game.
// Responsibilities:
//   - Router + middleware (request ids, access log, timeouts, panic recovery, CORS).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: start a round, view it, check attempts.
//   - Daily puzzle endpoints: mounted under /daily.
//
// Notes:
//   - Each player is identified by a signed session cookie (see session.go).
//   - The read-modify-write of a player's session runs inside store.Update,
//     so concurrent requests on one session are applied one at a time.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocab/assets"
	"github.com/robalobadob/vocab/internal/daily"
	"github.com/robalobadob/vocab/internal/game"
	"github.com/robalobadob/vocab/internal/store"
	"github.com/robalobadob/vocab/internal/words"
)

// Config carries everything the server needs from the process.
type Config struct {
	Vocab         *words.Vocab // shared, read-only
	Store         store.Store
	Results       *daily.Store // nil disables daily results
	SuccessAt     int          // desired words per round, clamped to the vocabulary
	Seed          int64        // jumble seed; negative means random
	DailySalt     string
	Secret        string
	ClientOrigin  string // empty disables CORS headers
	SecureCookies bool
	Now           func() time.Time
}

// Server bundles router and dependencies.
type Server struct {
	r   *chi.Mux
	cfg Config
	key []byte
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config) *Server {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), cfg: cfg, key: deriveKey(cfg.Secret)}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", s.handleIndexPage)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// --- game ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Get("/index", s.handleNewGame)
	s.r.Get("/game/state", s.handleState)
	s.r.Get("/keep_going", s.handleState)
	s.r.Post("/game/check", s.handleCheck)
	s.r.Post("/_check", s.handleCheck)

	s.mountDaily(s.r)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		hlog.FromRequest(r).Warn().Str("path", r.URL.Path).Msg("not found")
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (used by tests and Start).
func (s *Server) Handler() http.Handler { return s.r }

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		IdleTimeout:       10 * time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) now() time.Time { return s.cfg.Now() }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one log line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	lvl := zerolog.InfoLevel
	if status >= http.StatusInternalServerError {
		lvl = zerolog.ErrorLevel
	}
	hlog.FromRequest(r).WithLevel(lvl).
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ pages --------------------------------------

func (s *Server) handleIndexPage(w http.ResponseWriter, r *http.Request) {
	page, err := assets.IndexHTML()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("read index page")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// ------------------------------ GAME ---------------------------------------

// stateRes describes the caller's round.
type stateRes struct {
	Jumble      string   `json:"jumble"`
	TargetCount int      `json:"targetCount"`
	Matches     []string `json:"matches"`
	State       string   `json:"state"`
	Daily       string   `json:"daily,omitempty"`
	Words       []string `json:"words"`
}

func (s *Server) stateOf(e store.Entry) stateRes {
	return stateRes{
		Jumble:      e.Session.Jumble,
		TargetCount: e.Session.TargetCount,
		Matches:     e.Session.Matches,
		State:       string(e.Session.State()),
		Daily:       e.Daily,
		Words:       s.cfg.Vocab.List(),
	}
}

// handleNewGame starts (or restarts) the caller's round.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	s.startRound(w, r, s.cfg.Seed, "")
}

// startRound creates a fresh session with the given seed and stores it
// under the caller's session id. dailyKey is non-empty for daily puzzles.
func (s *Server) startRound(w http.ResponseWriter, r *http.Request, seed int64, dailyKey string) {
	logger := hlog.FromRequest(r)

	sid, err := s.ensureSessionID(w, r)
	if err != nil {
		logger.Error().Err(err).Msg("issue session")
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}

	sess, err := game.NewSession(s.cfg.Vocab, s.cfg.SuccessAt, seed)
	if err != nil {
		logger.Error().Err(err).Msg("new session")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}

	e := store.Entry{Session: sess, Daily: dailyKey, StartedAt: s.now()}
	if err := s.cfg.Store.Save(r.Context(), sid, e); err != nil {
		logger.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	logger.Debug().Str("jumble", sess.Jumble).Int("target", sess.TargetCount).Str("daily", dailyKey).Msg("round started")

	writeJSON(w, http.StatusOK, s.stateOf(e))
}

// handleState returns the caller's current round.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sid, ok := s.sessionID(r)
	if !ok {
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	e, err := s.cfg.Store.Get(r.Context(), sid)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load session")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	writeJSON(w, http.StatusOK, s.stateOf(e))
}

// checkReq is the payload for POST /game/check.
type checkReq struct {
	Attempt string `json:"attempt"`
}

// checkRes is the reply for an attempt on a round still in play.
type checkRes struct {
	Success bool         `json:"success"`
	Outcome game.Outcome `json:"outcome"`
	Message string       `json:"message"`
	Matches []string     `json:"matches"`
}

// doneRes tells the client the round is won.
type doneRes struct {
	Success   bool     `json:"success"`
	Redirect  bool     `json:"redirect"`
	Completed bool     `json:"completed"`
	Matches   []string `json:"matches"`
}

// handleCheck classifies one attempt against the caller's round.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)

	attempt, err := readAttempt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	sid, ok := s.sessionID(r)
	if !ok {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	var (
		outcome game.Outcome
		record  bool
	)
	e, err := s.cfg.Store.Update(r.Context(), sid, func(e store.Entry) (store.Entry, error) {
		next, out, err := game.Check(e.Session, s.cfg.Vocab, attempt)
		if err != nil {
			return e, err
		}
		outcome = out
		e.Session = next
		e.Attempts++
		if e.Daily != "" && !e.Recorded && next.State() == game.StateCompleted {
			e.Recorded = true
			record = true
		}
		return e, nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, game.ErrSessionState):
		writeError(w, http.StatusConflict, "no_session")
		return
	case err != nil:
		logger.Error().Err(err).Msg("check attempt")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	word := words.Normalize(attempt)
	logger.Debug().Str("attempt", word).Str("outcome", string(outcome)).Msg("checked")

	if record {
		s.recordDaily(r.Context(), sid, e)
	}

	if e.Session.State() == game.StateCompleted {
		writeJSON(w, http.StatusOK, doneRes{Success: true, Redirect: true, Completed: true, Matches: e.Session.Matches})
		return
	}
	writeJSON(w, http.StatusOK, checkRes{
		Success: outcome.Success(),
		Outcome: outcome,
		Message: outcome.Message(word, e.Session.Jumble),
		Matches: e.Session.Matches,
	})
}

// readAttempt accepts either a JSON body or a form field named "attempt".
func readAttempt(r *http.Request) (string, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var req checkReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", err
		}
		return req.Attempt, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", err
	}
	return r.PostForm.Get("attempt"), nil
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
