// Package server exposes a minisql store over HTTP.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gaswelder/minisql"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Statement bodies larger than this are rejected.
const maxBody = 1 << 20

// Server serves one shared session. Requests are executed one at a time.
type Server struct {
	mu      sync.Mutex
	session *minisql.Session
	logger  zerolog.Logger
	server  *http.Server

	// OnChange, if set, is called with the store after a request changed it.
	// It runs while the store is locked.
	OnChange func(*minisql.Store) error
}

// Output is the response to one executed statement.
type Output struct {
	Output string `json:"output"`
	Clear  bool   `json:"clear"`
}

// New creates a server that will listen on addr.
func New(addr string, session *minisql.Session, logger zerolog.Logger) *Server {
	s := &Server{
		session: session,
		logger:  logger,
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/query", s.query).Methods("POST")
	r.HandleFunc("/script", s.script).Methods("POST")
	r.HandleFunc("/snapshot", s.getSnapshot).Methods("GET")
	r.HandleFunc("/snapshot", s.putSnapshot).Methods("PUT")
	r.HandleFunc("/healthz", s.healthz).Methods("GET")

	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = ":" + addr
	}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens and serves until the server is shut down.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.server.Addr)
	}
	s.logger.Info().Str("addr", listener.Addr().String()).Msg("listening")
	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "server failed")
	}
	return nil
}

// Shutdown stops the server, waiting for running requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.session.Exec(body)
	if res.Changed {
		s.changed()
	}
	s.writeJSON(w, http.StatusOK, Output{res.Text, res.ClearScreen})
}

func (s *Server) script(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	outputs := []Output{}
	changed := false
	for _, res := range s.session.ExecScript(body) {
		outputs = append(outputs, Output{res.Text, res.ClearScreen})
		changed = changed || res.Changed
	}
	if changed {
		s.changed()
	}
	s.writeJSON(w, http.StatusOK, outputs)
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.session.Store.Snapshot(s.session.Client)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := minisql.WriteSnapshot(w, snap); err != nil {
		s.logger.Error().Err(err).Msg("failed to write snapshot")
	}
}

func (s *Server) putSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := minisql.ReadSnapshot(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	store, err := minisql.Restore(snap)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Store = store
	s.changed()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// changed runs the change hook. The caller holds the lock.
func (s *Server) changed() {
	if s.OnChange == nil {
		return
	}
	if err := s.OnChange(s.session.Store); err != nil {
		s.logger.Error().Err(err).Msg("change hook failed")
	}
}

func readBody(r *http.Request) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	if err != nil {
		return "", errors.Wrap(err, "failed to read request body")
	}
	if len(data) > maxBody {
		return "", errors.New("request body too large")
	}
	return string(data), nil
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Info().Err(err).Int("status", status).Msg("request failed")
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}
