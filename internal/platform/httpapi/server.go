// Package httpapi exposes the simulation over HTTP and websockets. Every
// game runs a fixed-step engine, so identical action sequences produce
// identical states.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/towerdef/internal/config"
	"github.com/vovakirdan/towerdef/internal/games/towerdefense/core"
	"github.com/vovakirdan/towerdef/internal/storage"
)

// DefaultMaxSessions caps the number of sessions created with POST /sessions.
const DefaultMaxSessions = 256

// DefaultSessionTTL is how long a session may sit unused before it is dropped.
const DefaultSessionTTL = 30 * time.Minute

// maxBodyBytes limits request bodies; an action is a few dozen bytes.
const maxBodyBytes = 1 << 16

// Options configures a Server.
type Options struct {
	Config      config.Config
	Mode        string         // Stored with results, e.g. "classic"
	Store       *storage.Store // Optional result history
	Logger      *log.Logger    // Defaults to a stderr logger
	MaxSessions int            // Defaults to DefaultMaxSessions; negative means unlimited
	SessionTTL  time.Duration  // Defaults to DefaultSessionTTL; negative keeps sessions forever
}

// Server is the HTTP façade. It owns a default session for the top-level
// single-game endpoints plus any number of id-addressed sessions.
type Server struct {
	cfg      config.Config
	gameMap  *core.Map
	mode     string
	store    *storage.Store
	logger   *log.Logger
	def      *session
	sessions *sessionTable
	upgrader websocket.Upgrader
}

// New validates the map and creates the default session.
func New(opts Options) (*Server, error) {
	m, err := core.NewMap(opts.Config.Map)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", opts.Config.Map.Name, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "towerdef-http",
		})
	}
	maxSessions := opts.MaxSessions
	if maxSessions == 0 {
		maxSessions = DefaultMaxSessions
	}
	ttl := opts.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}
	mode := opts.Mode
	if mode == "" {
		mode = "classic"
		if opts.Config.LivesEnabled() {
			mode = "lives"
		}
	}

	s := &Server{
		cfg:      opts.Config,
		gameMap:  m,
		mode:     mode,
		store:    opts.Store,
		logger:   logger,
		sessions: newSessionTable(maxSessions, ttl),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	engine, err := s.newEngine()
	if err != nil {
		return nil, err
	}
	s.def = &session{id: "default", engine: engine}
	return s, nil
}

func (s *Server) newEngine() (*core.Engine, error) {
	return core.NewEngine(s.cfg, s.gameMap, core.WithTiming(core.TimingFixedStep))
}

// Handler returns the routed, request-logging handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /info", s.handleInfo)
	mux.HandleFunc("POST /reset", s.handleReset(s.defaultSession))
	mux.HandleFunc("POST /step", s.handleStep(s.defaultSession))
	mux.HandleFunc("GET /state", s.handleState(s.defaultSession))

	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}/state", s.handleState(s.pathSession))
	mux.HandleFunc("POST /sessions/{id}/reset", s.handleReset(s.pathSession))
	mux.HandleFunc("POST /sessions/{id}/step", s.handleStep(s.pathSession))
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /sessions/{id}/ws", s.handleWebsocket)

	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.sweepSessions(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr, "map", s.gameMap.Name, "mode", s.mode)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sweepSessions drops idle sessions until ctx is done.
func (s *Server) sweepSessions(ctx context.Context) {
	if s.sessions.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(min(s.sessions.ttl/2, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range s.sessions.sweep() {
				s.logger.Info("session expired", "session", id)
			}
		}
	}
}

// sessionLookup resolves the session a request addresses.
type sessionLookup func(r *http.Request) (*session, bool)

func (s *Server) defaultSession(*http.Request) (*session, bool) {
	return s.def, true
}

func (s *Server) pathSession(r *http.Request) (*session, bool) {
	return s.sessions.get(r.PathValue("id"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "Tower Defense Game API")
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.Describe(s.cfg, s.gameMap))
}

func (s *Server) handleState(lookup sessionLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := lookup(r)
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, sess.snapshot())
	}
}

func (s *Server) handleReset(lookup sessionLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := lookup(r)
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, sess.reset())
	}
}

func (s *Server) handleStep(lookup sessionLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := lookup(r)
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		action, err := decodeAction(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		out, err := s.step(sess, action)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, out.state)
	}
}

// step applies an action and records the result when the game ends.
func (s *Server) step(sess *session, a core.Action) (stepOutcome, error) {
	out, err := sess.step(a)
	if err != nil {
		if !errors.Is(err, core.ErrGameOver) {
			s.logger.Debug("action rejected", "session", sess.id, "error", err)
		}
		return out, err
	}
	if out.finished {
		s.logger.Info("game over",
			"session", sess.id,
			"wave", out.state.WaveNumber,
			"time", out.state.GameTime,
			"towers", out.towers,
		)
		s.saveResult(sess, out)
	}
	return out, nil
}

func (s *Server) saveResult(sess *session, out stepOutcome) {
	if s.store == nil {
		return
	}
	_, err := s.store.SaveResult(storage.Result{
		Mode:        s.mode,
		Map:         s.gameMap.Name,
		Wave:        out.state.WaveNumber,
		GameTime:    out.state.GameTime,
		TowersBuilt: out.towers,
	})
	if err != nil {
		s.logger.Warn("could not save result", "session", sess.id, "error", err)
	}
}

type createSessionResponse struct {
	ID    string         `json:"id"`
	State core.GameState `json:"state"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	engine, err := s.newEngine()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sess, ok := s.sessions.add(engine)
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "too many sessions")
		return
	}
	s.logger.Info("session created", "session", sess.id, "sessions", s.sessions.len())
	writeJSON(w, http.StatusCreated, createSessionResponse{ID: sess.id, State: sess.snapshot()})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, ok := s.sessions.remove(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.logger.Info("session deleted", "session", id, "age", time.Since(sess.created).Round(time.Second))
	w.WriteHeader(http.StatusNoContent)
}

// decodeAction parses a JSON action and checks its shape.
func decodeAction(r io.Reader) (core.Action, error) {
	var a core.Action
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return core.Action{}, fmt.Errorf("invalid action format: %w", err)
	}
	if err := a.Validate(); err != nil {
		return core.Action{}, err
	}
	return a, nil
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // The client may already be gone
	json.NewEncoder(w).Encode(v)
}
