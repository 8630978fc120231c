// Package stats derives streaks and completion rates from a habit's
// completion log. Every query recomputes from a fresh snapshot.
package stats

import (
	"math"
	"slices"
	"time"

	"github.com/brk3/habitlog/internal/storage"
	"github.com/brk3/habitlog/pkg/habit"
)

const day = 24 * time.Hour

// Source is the read-only view the engine needs from the store.
type Source interface {
	Snapshot() storage.Snapshot
}

type Option func(*Engine)

// WithClock sets the engine's notion of now. Today is now's local calendar day.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

type Engine struct {
	src Source
	now func() time.Time
}

func New(src Source, opts ...Option) *Engine {
	e := &Engine{src: src, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Report pairs a habit with its statistics.
type Report struct {
	Habit habit.Habit      `json:"habit"`
	Stats habit.HabitStats `json:"stats"`
}

// HabitStats returns false when no habit has the given id.
func (e *Engine) HabitStats(habitID string) (habit.HabitStats, bool) {
	snap := e.src.Snapshot()
	i := slices.IndexFunc(snap.Habits, func(h habit.Habit) bool { return h.ID == habitID })
	if i == -1 {
		return habit.HabitStats{}, false
	}
	return ForHabit(snap.Habits[i], snap.Completions, e.now()), true
}

// AllHabitStats reports every habit in insertion order.
func (e *Engine) AllHabitStats() []Report {
	snap := e.src.Snapshot()
	now := e.now()
	out := make([]Report, 0, len(snap.Habits))
	for _, h := range snap.Habits {
		out = append(out, Report{Habit: h, Stats: ForHabit(h, snap.Completions, now)})
	}
	return out
}

func (e *Engine) OverallStats() habit.OverallStats {
	return Overall(e.src.Snapshot(), e.now())
}

// ForHabit computes h's statistics from the full completion log as of now.
func ForHabit(h habit.Habit, log []habit.Completion, now time.Time) habit.HabitStats {
	days := completedDays(h.ID, log)
	today := truncateDay(now)

	return habit.HabitStats{
		CurrentStreak:    currentStreak(days, today, truncateDay(h.CreatedAt)),
		LongestStreak:    longestStreak(days),
		TotalCompletions: len(days),
		CompletionRate:   completionRate(h, len(days), now),
		BestWeek:         bestWeek(days),
	}
}

// Overall aggregates across all habits. Active habits are those completed today.
func Overall(snap storage.Snapshot, now time.Time) habit.OverallStats {
	today := habit.FormatDate(now)

	total := 0
	doneToday := map[string]bool{}
	for _, c := range snap.Completions {
		if !c.Completed {
			continue
		}
		total++
		if c.Date == today {
			doneToday[c.HabitID] = true
		}
	}

	active := 0
	for _, h := range snap.Habits {
		if doneToday[h.ID] {
			active++
		}
	}

	var rate float64
	if len(snap.Habits) > 0 {
		rate = float64(active) / float64(len(snap.Habits)) * 100
	}
	return habit.OverallStats{
		TotalHabits:      len(snap.Habits),
		TotalCompletions: total,
		ActiveHabits:     active,
		CompletionRate:   rate,
	}
}

// completedDays returns the habit's completed days ascending, as UTC midnights.
// Records with unparseable dates are skipped.
func completedDays(habitID string, log []habit.Completion) []time.Time {
	var out []time.Time
	for _, c := range log {
		if c.HabitID != habitID || !c.Completed {
			continue
		}
		d, err := habit.ParseDate(c.Date)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}

// currentStreak walks back from today while each day is completed. The walk
// stops at the earlier of the creation day and the first completed day.
func currentStreak(days []time.Time, today, createdDay time.Time) int {
	if len(days) == 0 {
		return 0
	}
	done := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		done[d] = struct{}{}
	}
	floor := createdDay
	if days[0].Before(floor) {
		floor = days[0]
	}

	streak := 0
	for d := today; !d.Before(floor); d = d.AddDate(0, 0, -1) {
		if _, ok := done[d]; !ok {
			break
		}
		streak++
	}
	return streak
}

func longestStreak(days []time.Time) int {
	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && d.Sub(days[i-1]) == day {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// bestWeek buckets days by Monday-anchored week. Ties keep the earliest week.
func bestWeek(days []time.Time) habit.BestWeek {
	var order []time.Time
	counts := map[time.Time]int{}
	for _, d := range days {
		ws := weekStart(d)
		if _, ok := counts[ws]; !ok {
			order = append(order, ws)
		}
		counts[ws]++
	}

	best := habit.BestWeek{}
	for _, ws := range order {
		if counts[ws] > best.Completions {
			best = habit.BestWeek{WeekStart: ws.Format(habit.DateLayout), Completions: counts[ws]}
		}
	}
	return best
}

func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// completionRate is a percentage in [0, 100].
func completionRate(h habit.Habit, total int, now time.Time) float64 {
	elapsed := math.Ceil(now.Sub(h.CreatedAt).Hours() / 24)

	var expected float64
	if h.Frequency == habit.Daily {
		expected = elapsed
	} else {
		goal := h.Goal
		if goal < 1 {
			goal = 1
		}
		expected = math.Ceil(elapsed/7) * float64(goal)
	}
	if expected <= 0 {
		return 0
	}
	return math.Min(float64(total)/expected*100, 100)
}

// truncateDay maps t to the UTC midnight of its local calendar day, the same
// representation habit.ParseDate gives day keys.
func truncateDay(t time.Time) time.Time {
	d, _ := habit.ParseDate(habit.FormatDate(t))
	return d
}
