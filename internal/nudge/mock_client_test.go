package nudge

import (
	"context"

	"github.com/brk3/habitlog/pkg/habit"
)

type mockClient struct {
	habits []habit.Habit
	done   map[string]bool // "<id>/<date>"
	err    error
}

func (f *mockClient) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	return f.habits, f.err
}

func (f *mockClient) IsCompletedOn(ctx context.Context, habitID, date string) (bool, error) {
	return f.done[habitID+"/"+date], f.err
}
