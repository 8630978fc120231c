package server

import (
	"github.com/brk3/habitlog/internal/preferences"
	"github.com/brk3/habitlog/internal/stats"
	"github.com/brk3/habitlog/pkg/habit"
)

type ErrorResponse struct {
	Error string `json:"error"`
	// HabitID is set when a habit was created in memory but could not be saved.
	HabitID string `json:"habit_id,omitempty"`
}

type HabitListResponse struct {
	Habits []habit.Habit `json:"habits"`
}

type CompletionListResponse struct {
	HabitID     string             `json:"habit_id"`
	Completions []habit.Completion `json:"completions"`
}

type CompletionStatusResponse struct {
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type HabitStatsResponse struct {
	HabitID string           `json:"habit_id"`
	Stats   habit.HabitStats `json:"stats"`
}

type HabitStatsListResponse struct {
	Habits []stats.Report `json:"habits"`
}

type ThemeResponse struct {
	Theme preferences.Theme `json:"theme"`
}
