package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"repertoire/internal/models"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	songs := len(s.dataset.Songs)
	source := s.source
	loadedAt := s.loadedAt
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"songs":     songs,
		"source":    source,
		"loaded_at": loadedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Dataset())
}

func (s *Server) handleSongs(w http.ResponseWriter, r *http.Request) {
	ds := s.Dataset()

	section := r.URL.Query().Get("section")
	if section == "" {
		writeJSON(w, http.StatusOK, ds.Songs)
		return
	}

	var matched []models.Song
	for _, song := range ds.Songs {
		if strings.EqualFold(string(song.Section), section) {
			matched = append(matched, song)
		}
	}
	if matched == nil {
		matched = []models.Song{}
	}
	writeJSON(w, http.StatusOK, matched)
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Dataset().Members)
}

func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	ds := s.Dataset()

	if text, ok := ds.Progressions[strings.ToLower(title)]; ok {
		writeJSON(w, http.StatusOK, map[string]string{"title": title, "progression": text})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "no progression for " + title})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	result, err := s.Reload(r.Context())
	if err != nil {
		s.log.Error("reload failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
