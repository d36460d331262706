// Package server exposes run history and live progress over HTTP while the
// scheduler is active.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/common"
	"github.com/ternarybob/specto/internal/interfaces"
	"github.com/ternarybob/specto/internal/results"
)

// TriggerFunc starts a run when the API asks for one. It runs on the caller's
// goroutine; the server invokes it asynchronously.
type TriggerFunc func(ctx context.Context) error

// Server manages the HTTP server and routes
type Server struct {
	config  *common.Config
	logger  arbor.ILogger
	storage interfaces.RunStorage
	hub     *ProgressHub
	trigger TriggerFunc
	server  *http.Server
}

// New creates the HTTP server. trigger may be nil if manual runs are not
// supported in this mode.
func New(config *common.Config, logger arbor.ILogger, storage interfaces.RunStorage, hub *ProgressHub, trigger TriggerFunc) *Server {
	s := &Server{
		config:  config,
		logger:  logger,
		storage: storage,
		hub:     hub,
		trigger: trigger,
	}

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.withMiddleware(s.routes()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.server.Addr).Msg("HTTP server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", s.hub.HandleWebSocket)

	mux.HandleFunc("/api/status", s.statusHandler)
	mux.HandleFunc("/api/version", s.versionHandler)
	mux.HandleFunc("/api/runs", s.runsHandler)
	mux.HandleFunc("/api/runs/", s.runHandler)

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return mux
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"surface":   s.config.Runner.Surface,
		"target":    s.config.Target.BaseURL,
		"schedule":  s.config.Runner.Schedule,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) versionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetFullVersion(),
	})
}

// runsHandler lists runs on GET and triggers a new run on POST.
func (s *Server) runsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		runs, err := s.storage.ListRuns(limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})

	case http.MethodPost:
		if s.trigger == nil {
			writeError(w, http.StatusConflict, "manual runs are not enabled")
			return
		}
		go func() {
			if err := s.trigger(context.Background()); err != nil {
				s.logger.Error().Err(err).Msg("Triggered run failed")
			}
		}()
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// runHandler serves /api/runs/{id} and /api/runs/{id}/report.
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	id := rest
	wantReport := false
	if strings.HasSuffix(rest, "/report") {
		id = strings.TrimSuffix(rest, "/report")
		wantReport = true
	}
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	run, err := s.storage.GetRun(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if wantReport {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, results.BuildMarkdown(run))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
