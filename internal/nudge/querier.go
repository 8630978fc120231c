package nudge

import (
	"context"

	"github.com/brk3/habitlog/pkg/habit"
)

type Querier interface {
	ListHabits(ctx context.Context) ([]habit.Habit, error)
	IsCompletedOn(ctx context.Context, habitID, date string) (bool, error)
}

type Notifier interface {
	SendNudge(habits []string, hoursTillExpiry int) error
}
