package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/thinkscotty/trendstory/internal/config"
	"github.com/thinkscotty/trendstory/internal/trends"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]any{
		"status":     "ok",
		"version":    s.version,
		"build_time": s.buildTime,
	})
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	sources := make([]string, 0, len(trends.SupportedSources()))
	for _, src := range trends.SupportedSources() {
		sources = append(sources, string(src))
	}
	jsonResponse(w, map[string]any{
		"sources":       sources,
		"default_limit": s.cfg.Trends.DefaultLimit,
		"max_limit":     s.cfg.Trends.MaxLimit,
	})
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	themes := make([]string, 0, len(config.SupportedThemes()))
	for _, t := range config.SupportedThemes() {
		themes = append(themes, string(t))
	}
	jsonResponse(w, map[string]any{"themes": themes})
}

func (s *Server) handleStoriesList(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	source := r.URL.Query().Get("source")

	stories, err := s.db.ListStories(r.Context(), source, limit)
	if err != nil {
		slog.Error("Failed to list stories", "error", err)
		jsonError(w, "Failed to list stories", 500)
		return
	}

	count, err := s.db.CountStories(r.Context())
	if err != nil {
		slog.Error("Failed to count stories", "error", err)
		jsonError(w, "Failed to list stories", 500)
		return
	}

	jsonResponse(w, map[string]any{
		"stories": stories,
		"total":   count,
	})
}

func (s *Server) handleStoryGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, err := s.db.GetStory(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		jsonError(w, "Story not found", 404)
		return
	}
	if err != nil {
		slog.Error("Failed to load story", "id", id, "error", err)
		jsonError(w, "Failed to load story", 500)
		return
	}

	jsonResponse(w, rec)
}

func jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
