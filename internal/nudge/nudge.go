// Package nudge reminds the user about streaks that end at midnight unless
// the habit is completed today.
package nudge

import (
	"context"
	"fmt"
	"time"

	"github.com/brk3/habitlog/internal/logger"
	"github.com/brk3/habitlog/pkg/habit"
)

// StreaksAtRisk returns habits completed yesterday but not yet today.
func StreaksAtRisk(ctx context.Context, q Querier, now time.Time) ([]habit.Habit, error) {
	habits, err := q.ListHabits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	today := habit.FormatDate(now)
	yesterday := habit.FormatDate(now.AddDate(0, 0, -1))

	var out []habit.Habit
	for _, h := range habits {
		doneToday, err := q.IsCompletedOn(ctx, h.ID, today)
		if err != nil {
			return nil, fmt.Errorf("check %s on %s: %w", h.ID, today, err)
		}
		if doneToday {
			continue
		}
		doneYesterday, err := q.IsCompletedOn(ctx, h.ID, yesterday)
		if err != nil {
			return nil, fmt.Errorf("check %s on %s: %w", h.ID, yesterday, err)
		}
		if doneYesterday {
			out = append(out, h)
		}
	}
	return out, nil
}

// Nudge sends one reminder when at most threshold hours remain before
// midnight and some streak is at risk. It reports whether a reminder was sent.
func Nudge(ctx context.Context, q Querier, n Notifier, now time.Time, threshold int) (bool, error) {
	hoursLeft := hoursUntilMidnight(now)
	if hoursLeft > threshold {
		logger.Debug("Outside nudge window", "hours_left", hoursLeft, "threshold", threshold)
		return false, nil
	}

	atRisk, err := StreaksAtRisk(ctx, q, now)
	if err != nil {
		return false, err
	}
	if len(atRisk) == 0 {
		logger.Info("No streaks at risk")
		return false, nil
	}

	titles := make([]string, 0, len(atRisk))
	for _, h := range atRisk {
		titles = append(titles, h.Title)
	}
	if err := n.SendNudge(titles, hoursLeft); err != nil {
		return false, fmt.Errorf("send nudge: %w", err)
	}
	logger.Info("Sent nudge", "habits", titles, "hours_left", hoursLeft)
	return true, nil
}

// hoursUntilMidnight rounds down, so 23:30 reports 0.
func hoursUntilMidnight(now time.Time) int {
	local := now.Local()
	midnight := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, local.Location())
	return int(midnight.Sub(local).Hours())
}
