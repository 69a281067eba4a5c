// Package server exposes the story generation pipeline over JSON HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/thinkscotty/trendstory/internal/config"
	"github.com/thinkscotty/trendstory/internal/database"
	"github.com/thinkscotty/trendstory/internal/story"
)

type Server struct {
	cfg       config.Config
	story     *story.Service
	db        *database.DB
	version   string
	buildTime string
	httpSrv   *http.Server
}

func New(cfg config.Config, storySvc *story.Service, db *database.DB, version, buildTime string) *Server {
	return &Server{
		cfg:       cfg,
		story:     storySvc,
		db:        db,
		version:   version,
		buildTime: buildTime,
	}
}

// Start sets up routes and starts the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	s.routes(mux)

	handler := recoveryMiddleware(loggingMiddleware(mux))

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	slog.Info("Starting server", "addr", addr)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/v1/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/v1/sources", s.handleSources)
	mux.HandleFunc("GET /api/v1/themes", s.handleThemes)
	mux.HandleFunc("GET /api/v1/stories", s.handleStoriesList)
	mux.HandleFunc("GET /api/v1/stories/{id}", s.handleStoryGet)
}
