package stats

import (
	"testing"
	"time"

	"github.com/brk3/habitlog/internal/storage"
	"github.com/brk3/habitlog/pkg/habit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	snap storage.Snapshot
}

func (f *fakeSource) Snapshot() storage.Snapshot { return f.snap }

// at returns noon local time on the given day, so the local calendar day is unambiguous.
func at(date string) time.Time {
	d, err := time.ParseInLocation(habit.DateLayout, date, time.Local)
	if err != nil {
		panic(err)
	}
	return d.Add(12 * time.Hour)
}

func done(habitID string, dates ...string) []habit.Completion {
	out := make([]habit.Completion, 0, len(dates))
	for _, d := range dates {
		out = append(out, habit.Completion{ID: habitID + d, HabitID: habitID, Date: d, Completed: true})
	}
	return out
}

func newEngine(snap storage.Snapshot, now time.Time) *Engine {
	return New(&fakeSource{snap: snap}, WithClock(func() time.Time { return now }))
}

func dailyHabit(id, created string) habit.Habit {
	return habit.Habit{ID: id, Title: id, Frequency: habit.Daily, Goal: 1, CreatedAt: at(created)}
}

func TestHabitStats_StreakExample(t *testing.T) {
	h := dailyHabit("h", "2023-12-31")
	snap := storage.Snapshot{
		Habits:      []habit.Habit{h},
		Completions: done("h", "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05"),
	}

	s, ok := newEngine(snap, at("2024-01-05")).HabitStats("h")
	require.True(t, ok)
	assert.Equal(t, 3, s.LongestStreak)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 4, s.TotalCompletions)

	s, _ = newEngine(snap, at("2024-01-06")).HabitStats("h")
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)

	s, _ = newEngine(snap, at("2024-01-03")).HabitStats("h")
	assert.Equal(t, 3, s.CurrentStreak)
}

func TestHabitStats_UnknownHabit(t *testing.T) {
	_, ok := newEngine(storage.Snapshot{}, at("2024-01-01")).HabitStats("missing")
	assert.False(t, ok)
}

func TestHabitStats_NotDoneRecordBreaksStreak(t *testing.T) {
	h := dailyHabit("h", "2023-12-31")
	log := done("h", "2024-01-01", "2024-01-03")
	log = append(log, habit.Completion{ID: "x", HabitID: "h", Date: "2024-01-02", Completed: false})

	s := ForHabit(h, log, at("2024-01-03"))
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	assert.Equal(t, 2, s.TotalCompletions)
}

func TestHabitStats_TodayMarkedNotDone(t *testing.T) {
	h := dailyHabit("h", "2023-12-31")
	log := done("h", "2024-01-01", "2024-01-02")
	log = append(log, habit.Completion{ID: "x", HabitID: "h", Date: "2024-01-03", Completed: false})

	assert.Equal(t, 0, ForHabit(h, log, at("2024-01-03")).CurrentStreak)
}

func TestHabitStats_IgnoresOtherHabits(t *testing.T) {
	h := dailyHabit("h", "2023-12-31")
	log := append(done("h", "2024-01-02"), done("other", "2024-01-01", "2024-01-03")...)

	s := ForHabit(h, log, at("2024-01-03"))
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	assert.Equal(t, 1, s.TotalCompletions)
}

func TestCurrentStreak_BackfilledBeforeCreation(t *testing.T) {
	h := dailyHabit("h", "2024-01-04")
	log := done("h", "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05")

	s := ForHabit(h, log, at("2024-01-05"))
	assert.Equal(t, 5, s.CurrentStreak)
	assert.Equal(t, 5, s.LongestStreak)
}

func TestLongestStreak_UnsortedLog(t *testing.T) {
	h := dailyHabit("h", "2023-12-01")
	log := done("h", "2024-01-10", "2024-01-02", "2024-01-11", "2024-01-01", "2024-01-12", "2024-01-03", "2024-01-13")

	assert.Equal(t, 4, ForHabit(h, log, at("2024-02-01")).LongestStreak)
}

func TestLongestStreak_AcrossMonthAndYear(t *testing.T) {
	h := dailyHabit("h", "2023-12-01")
	log := done("h", "2023-12-30", "2023-12-31", "2024-01-01", "2024-02-28", "2024-02-29", "2024-03-01")

	assert.Equal(t, 3, ForHabit(h, log, at("2024-04-01")).LongestStreak)
}

func TestLongestStreak_Empty(t *testing.T) {
	s := ForHabit(dailyHabit("h", "2024-01-01"), nil, at("2024-01-05"))
	assert.Equal(t, 0, s.LongestStreak)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, habit.BestWeek{}, s.BestWeek)
}

func TestBestWeek(t *testing.T) {
	h := dailyHabit("h", "2023-12-01")
	// 2024-01-01 is a Monday; 2024-01-07 is the Sunday of the same week.
	log := done("h", "2024-01-01", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10")

	bw := ForHabit(h, log, at("2024-02-01")).BestWeek
	assert.Equal(t, habit.BestWeek{WeekStart: "2024-01-08", Completions: 3}, bw)
}

func TestBestWeek_TieKeepsFirstSeen(t *testing.T) {
	h := dailyHabit("h", "2023-12-01")
	// later week inserted first; the log is ordered by date before partitioning
	log := done("h", "2024-01-08", "2024-01-09", "2024-01-01", "2024-01-02")

	bw := ForHabit(h, log, at("2024-02-01")).BestWeek
	assert.Equal(t, habit.BestWeek{WeekStart: "2024-01-01", Completions: 2}, bw)
}

func TestCompletionRate(t *testing.T) {
	now := at("2024-01-15")
	tests := []struct {
		name  string
		habit habit.Habit
		log   []habit.Completion
		want  float64
	}{
		{
			name:  "daily half",
			habit: habit.Habit{ID: "h", Frequency: habit.Daily, Goal: 1, CreatedAt: now.AddDate(0, 0, -10)},
			log:   done("h", "2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10"),
			want:  50,
		},
		{
			name:  "daily partial day rounds up",
			habit: habit.Habit{ID: "h", Frequency: habit.Daily, Goal: 1, CreatedAt: now.Add(-36 * time.Hour)},
			log:   done("h", "2024-01-14"),
			want:  50,
		},
		{
			name:  "weekly goal",
			habit: habit.Habit{ID: "h", Frequency: habit.Weekly, Goal: 3, CreatedAt: now.AddDate(0, 0, -14)},
			log:   done("h", "2024-01-02", "2024-01-04", "2024-01-09"),
			want:  50,
		},
		{
			name:  "weekly partial week rounds up",
			habit: habit.Habit{ID: "h", Frequency: habit.Weekly, Goal: 2, CreatedAt: now.AddDate(0, 0, -8)},
			log:   done("h", "2024-01-10"),
			want:  25,
		},
		{
			name:  "clamped to 100",
			habit: habit.Habit{ID: "h", Frequency: habit.Daily, Goal: 1, CreatedAt: now.AddDate(0, 0, -1)},
			log:   done("h", "2024-01-10", "2024-01-11", "2024-01-12", "2024-01-13"),
			want:  100,
		},
		{
			name:  "created now",
			habit: habit.Habit{ID: "h", Frequency: habit.Daily, Goal: 1, CreatedAt: now},
			want:  0,
		},
		{
			name:  "created now with backfill",
			habit: habit.Habit{ID: "h", Frequency: habit.Weekly, Goal: 1, CreatedAt: now},
			log:   done("h", "2024-01-10"),
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForHabit(tt.habit, tt.log, now).CompletionRate
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestOverallStats_Empty(t *testing.T) {
	got := newEngine(storage.Snapshot{}, at("2024-01-01")).OverallStats()
	assert.Equal(t, habit.OverallStats{}, got)
}

func TestOverallStats(t *testing.T) {
	snap := storage.Snapshot{
		Habits: []habit.Habit{
			dailyHabit("a", "2024-01-01"),
			dailyHabit("b", "2024-01-01"),
			dailyHabit("c", "2024-01-01"),
			dailyHabit("d", "2024-01-01"),
		},
	}
	snap.Completions = append(snap.Completions, done("a", "2024-01-04", "2024-01-05")...)
	snap.Completions = append(snap.Completions, done("b", "2024-01-05")...)
	snap.Completions = append(snap.Completions, done("c", "2024-01-03")...)
	snap.Completions = append(snap.Completions, habit.Completion{ID: "x", HabitID: "d", Date: "2024-01-05", Completed: false})

	got := newEngine(snap, at("2024-01-05")).OverallStats()
	assert.Equal(t, habit.OverallStats{
		TotalHabits:      4,
		TotalCompletions: 4,
		ActiveHabits:     2,
		CompletionRate:   50,
	}, got)
}

func TestAllHabitStats(t *testing.T) {
	snap := storage.Snapshot{
		Habits:      []habit.Habit{dailyHabit("a", "2024-01-01"), dailyHabit("b", "2024-01-01")},
		Completions: done("b", "2024-01-04", "2024-01-05"),
	}

	reports := newEngine(snap, at("2024-01-05")).AllHabitStats()
	require.Len(t, reports, 2)
	assert.Equal(t, "a", reports[0].Habit.ID)
	assert.Equal(t, 0, reports[0].Stats.CurrentStreak)
	assert.Equal(t, "b", reports[1].Habit.ID)
	assert.Equal(t, 2, reports[1].Stats.CurrentStreak)
}
