package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/faizmokh/minitrack/internal/calendar"
	"github.com/faizmokh/minitrack/internal/puzzle"
	"github.com/faizmokh/minitrack/internal/report"
	"github.com/faizmokh/minitrack/internal/stats"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if cached, ok := s.dashboards.Get(user); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	records, err := s.store.List(r.Context(), user)
	if err != nil {
		log.Printf("dashboard for %s: %v", user, err)
		writeError(w, http.StatusInternalServerError, "Failed to load times")
		return
	}

	dashboard := report.NewDashboard(stats.Build(records, s.start, puzzle.Today(s.clock())))
	s.dashboards.Set(user, dashboard)
	writeJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleTracker(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	today := puzzle.Today(s.clock())
	start, end := s.start, today
	year := 0
	if value := r.URL.Query().Get("year"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < s.start.Year() || parsed > today.Year() {
			writeError(w, http.StatusBadRequest, "year is outside the tracked range")
			return
		}
		year = parsed
		start, end = calendar.YearBounds(year, s.start, today)
	}

	records, err := s.store.List(r.Context(), user)
	if err != nil {
		log.Printf("tracker for %s: %v", user, err)
		writeError(w, http.StatusInternalServerError, "Failed to load times")
		return
	}

	best := calendar.DailyBests(records)
	grid := calendar.BuildGrid(start, end, best, s.thresholds)
	writeJSON(w, http.StatusOK, report.Tracker{
		Grids: []report.Grid{report.NewGrid(year, start, end, grid)},
		Stats: report.NewTrackerStats(stats.Track(s.start, today, best)),
	})
}
