package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"

	"github.com/faizmokh/minitrack/internal/puzzle"
	"github.com/faizmokh/minitrack/internal/report"
	"github.com/faizmokh/minitrack/internal/storage"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type autoLogResponse struct {
	Status string        `json:"status"`
	ID     int64         `json:"id,omitempty"`
	Entry  *report.Entry `json:"entry,omitempty"`
}

// cors sets the allow headers for a known origin and reports whether the
// request may proceed.
func (s *Server) cors(w http.ResponseWriter, r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if _, ok := s.origins[origin]; origin == "" || !ok {
		writeError(w, http.StatusForbidden, "Origin not allowed")
		return false
	}
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	h.Add("Vary", "Origin")
	return true
}

func (s *Server) handleAutoLogPreflight(w http.ResponseWriter, r *http.Request) {
	if !s.cors(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleAutoLog(w http.ResponseWriter, r *http.Request) {
	if !s.cors(w, r) {
		return
	}
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	raw, ok := body["seconds"].(float64)
	if !ok {
		writeError(w, http.StatusBadRequest, "seconds must be a positive number")
		return
	}
	seconds, ok := puzzle.RoundSeconds(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, "seconds must be a positive number")
		return
	}

	// The extension reports the puzzle's UTC date.
	today := puzzle.Day(s.clock())
	date := today
	if value, ok := body["date"].(string); ok && isoDatePattern.MatchString(value) {
		if parsed, err := puzzle.ParseDate(value); err == nil {
			date = parsed
		}
	}

	rec := puzzle.Record{Date: date, Seconds: seconds, Source: puzzle.SourceAuto}
	if err := puzzle.Validate(rec, today); err != nil {
		if errors.Is(err, puzzle.ErrFutureDate) {
			writeError(w, http.StatusBadRequest, "Date cannot be in the future")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := s.store.Log(r.Context(), user, rec)
	var already *storage.AlreadyLoggedError
	switch {
	case errors.As(err, &already):
		writeJSON(w, http.StatusOK, autoLogResponse{Status: "already_logged", ID: already.Existing.ID})
		return
	case err != nil:
		log.Printf("auto-log %s for %s: %v", rec.Key(), user, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to save time", Details: err.Error()})
		return
	}

	s.dashboards.Invalidate(user)
	entry := report.NewEntry(saved)
	writeJSON(w, http.StatusOK, autoLogResponse{Status: "ok", Entry: &entry})
}
