package habit

import "time"

// DateLayout is the day-key format used for completion dates.
const DateLayout = time.DateOnly

type Frequency string

const (
	Daily  Frequency = "daily"
	Weekly Frequency = "weekly"
)

type Habit struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Frequency   Frequency `json:"frequency"`
	Goal        int       `json:"goal"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HabitInput carries the user-supplied fields of a new habit.
type HabitInput struct {
	Title       string    `json:"title" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=1024"`
	Frequency   Frequency `json:"frequency" validate:"required,oneof=daily weekly"`
	Goal        int       `json:"goal" validate:"gte=1"`
	Color       string    `json:"color" validate:"max=32"`
}

// HabitPatch is a partial update. Nil fields are left untouched.
type HabitPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Frequency   *Frequency `json:"frequency,omitempty"`
	Goal        *int       `json:"goal,omitempty"`
	Color       *string    `json:"color,omitempty"`
}

type Completion struct {
	ID        string `json:"id"`
	HabitID   string `json:"habitId"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes,omitempty"`
}

type BestWeek struct {
	WeekStart   string `json:"week_start"`
	Completions int    `json:"completions"`
}

type HabitStats struct {
	CurrentStreak    int      `json:"current_streak"`
	LongestStreak    int      `json:"longest_streak"`
	TotalCompletions int      `json:"total_completions"`
	CompletionRate   float64  `json:"completion_rate"`
	BestWeek         BestWeek `json:"best_week"`
}

type OverallStats struct {
	TotalHabits      int     `json:"total_habits"`
	TotalCompletions int     `json:"total_completions"`
	ActiveHabits     int     `json:"active_habits"`
	CompletionRate   float64 `json:"completion_rate"`
}
