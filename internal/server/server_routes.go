package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/brk3/habitlog/internal/logger"
	"github.com/brk3/habitlog/internal/preferences"
	"github.com/brk3/habitlog/internal/tracker"
	"github.com/brk3/habitlog/pkg/habit"
	"github.com/brk3/habitlog/pkg/versioninfo"
	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	if err := writeJSON(w, code, ErrorResponse{Error: msg}); err != nil {
		logger.Error("Failed to write error response", "status", code, "error", err)
	}
}

// writeStoreError maps tracker errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracker.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, tracker.ErrPersist):
		persistFailuresTotal.Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "storage error")
	}
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	if err := writeJSON(w, http.StatusOK, info); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
	}
}

func (s *Server) listHabits(w http.ResponseWriter, _ *http.Request) {
	habits := s.store.Habits()
	logger.Debug("Listed habits successfully", "count", len(habits))
	if err := writeJSON(w, http.StatusOK, HabitListResponse{Habits: habits}); err != nil {
		logger.Error("Failed to serialize habit list response", "error", err)
	}
}

func (s *Server) addHabit(w http.ResponseWriter, r *http.Request) {
	var in habit.HabitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		logger.Warn("Invalid JSON in add habit request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if in.Frequency == "" {
		in.Frequency = habit.Daily
	}
	if in.Goal == 0 {
		in.Goal = 1
	}

	h, err := s.store.AddHabit(in)
	if errors.Is(err, tracker.ErrPersist) {
		logger.Error("Added habit but failed to save it", "habit_id", h.ID, "error", err)
		persistFailuresTotal.Inc()
		s.refreshGauges()
		if err := writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), HabitID: h.ID}); err != nil {
			logger.Error("Failed to write error response", "habit_id", h.ID, "error", err)
		}
		return
	}
	if err != nil {
		logger.Error("Failed to add habit", "title", in.Title, "error", err)
		writeStoreError(w, err)
		return
	}
	s.refreshGauges()
	if err := writeJSON(w, http.StatusCreated, h); err != nil {
		logger.Error("Failed to serialize add habit response", "habit_id", h.ID, "error", err)
	}
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	h, ok := s.store.HabitByID(habitID)
	if !ok {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	if err := writeJSON(w, http.StatusOK, h); err != nil {
		logger.Error("Failed to serialize get habit response", "habit_id", habitID, "error", err)
	}
}

func (s *Server) updateHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	if _, ok := s.store.HabitByID(habitID); !ok {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	var p habit.HabitPatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		logger.Warn("Invalid JSON in update habit request", "habit_id", habitID, "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.store.UpdateHabit(habitID, p); err != nil {
		logger.Error("Failed to update habit", "habit_id", habitID, "error", err)
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	if _, ok := s.store.HabitByID(habitID); !ok {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	logger.Info("Deleting habit", "habit_id", habitID)

	if err := s.store.DeleteHabit(habitID); err != nil {
		logger.Error("Failed to delete habit", "habit_id", habitID, "error", err)
		writeStoreError(w, err)
		return
	}
	s.refreshGauges()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCompletions(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	if _, ok := s.store.HabitByID(habitID); !ok {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	completions := s.store.CompletionsForHabit(habitID)
	slices.SortFunc(completions, func(a, b habit.Completion) int {
		return strings.Compare(a.Date, b.Date)
	})
	resp := CompletionListResponse{HabitID: habitID, Completions: completions}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize completions response", "habit_id", habitID, "error", err)
	}
}

// completionTarget reads and checks the habit id and date path params.
func (s *Server) completionTarget(w http.ResponseWriter, r *http.Request) (habitID, date string, ok bool) {
	habitID = chi.URLParam(r, "habit_id")
	date = chi.URLParam(r, "date")
	if _, err := habit.ParseDate(date); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", "", false
	}
	if _, found := s.store.HabitByID(habitID); !found {
		writeError(w, http.StatusNotFound, "habit not found")
		return "", "", false
	}
	return habitID, date, true
}

func (s *Server) getCompletionStatus(w http.ResponseWriter, r *http.Request) {
	habitID, date, ok := s.completionTarget(w, r)
	if !ok {
		return
	}
	resp := CompletionStatusResponse{HabitID: habitID, Date: date, Completed: s.store.IsCompletedOn(habitID, date)}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize completion status", "habit_id", habitID, "date", date, "error", err)
	}
}

func (s *Server) toggleCompletion(w http.ResponseWriter, r *http.Request) {
	habitID, date, ok := s.completionTarget(w, r)
	if !ok {
		return
	}
	if err := s.store.ToggleCompletion(habitID, date); err != nil {
		logger.Error("Failed to toggle completion", "habit_id", habitID, "date", date, "error", err)
		writeStoreError(w, err)
		return
	}
	completed := s.store.IsCompletedOn(habitID, date)
	if completed {
		completionsToggledTotal.WithLabelValues("done").Inc()
	} else {
		completionsToggledTotal.WithLabelValues("undone").Inc()
	}
	logger.Info("Toggled completion", "habit_id", habitID, "date", date, "completed", completed)
	s.refreshGauges()

	resp := CompletionStatusResponse{HabitID: habitID, Date: date, Completed: completed}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize toggle response", "habit_id", habitID, "date", date, "error", err)
	}
}

func (s *Server) setCompletionNotes(w http.ResponseWriter, r *http.Request) {
	habitID, date, ok := s.completionTarget(w, r)
	if !ok {
		return
	}
	var req NotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.store.SetCompletionNotes(habitID, date, req.Notes); err != nil {
		logger.Error("Failed to set completion notes", "habit_id", habitID, "date", date, "error", err)
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getHabitStats(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	logger.Debug("Getting habit stats", "habit_id", habitID)

	st, ok := s.stats.HabitStats(habitID)
	if !ok {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	if err := writeJSON(w, http.StatusOK, HabitStatsResponse{HabitID: habitID, Stats: st}); err != nil {
		logger.Error("Failed to serialize habit stats response", "habit_id", habitID, "error", err)
	}
}

func (s *Server) getOverallStats(w http.ResponseWriter, _ *http.Request) {
	if err := writeJSON(w, http.StatusOK, s.stats.OverallStats()); err != nil {
		logger.Error("Failed to serialize overall stats response", "error", err)
	}
}

func (s *Server) listHabitStats(w http.ResponseWriter, _ *http.Request) {
	reports := s.stats.AllHabitStats()
	if err := writeJSON(w, http.StatusOK, HabitStatsListResponse{Habits: reports}); err != nil {
		logger.Error("Failed to serialize habit stats list response", "error", err)
	}
}

func (s *Server) getTheme(w http.ResponseWriter, _ *http.Request) {
	t, err := preferences.CurrentTheme(s.settings)
	if err != nil {
		logger.Error("Failed to read theme", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if err := writeJSON(w, http.StatusOK, ThemeResponse{Theme: t}); err != nil {
		logger.Error("Failed to serialize theme response", "error", err)
	}
}

func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	t, err := preferences.ParseTheme(string(req.Theme))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := preferences.SetTheme(s.settings, t); err != nil {
		logger.Error("Failed to save theme", "theme", t, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if err := writeJSON(w, http.StatusOK, ThemeResponse{Theme: t}); err != nil {
		logger.Error("Failed to serialize theme response", "error", err)
	}
}

func (s *Server) toggleTheme(w http.ResponseWriter, _ *http.Request) {
	t, err := preferences.ToggleTheme(s.settings)
	if err != nil {
		logger.Error("Failed to toggle theme", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if err := writeJSON(w, http.StatusOK, ThemeResponse{Theme: t}); err != nil {
		logger.Error("Failed to serialize theme response", "error", err)
	}
}
