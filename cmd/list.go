package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/brk3/habitlog/pkg/habit"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long:  `The "list" command lists your habits with today's status and current streak.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := newClient()

		reports, err := c.ListHabitStats(ctx)
		if err != nil {
			return err
		}
		if len(reports) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), `No habits yet. Add one with "habits add <title>".`)
			return nil
		}

		p := currentPalette(ctx, c)
		today := habit.FormatDate(time.Now())
		rows := make([][]string, 0, len(reports))
		for _, r := range reports {
			h := r.Habit
			done, err := c.IsCompletedOn(ctx, h.ID, today)
			if err != nil {
				return err
			}
			mark := p.muted.Render("·")
			if done {
				mark = p.good.Render("✓")
			}
			cadence := string(h.Frequency)
			if h.Frequency == habit.Weekly {
				cadence += " ×" + strconv.Itoa(h.Goal)
			}
			rows = append(rows, []string{h.ID, swatch(h), cadence, mark, strconv.Itoa(r.Stats.CurrentStreak)})
		}
		fmt.Fprintln(cmd.OutOrStdout(), p.table([]string{"ID", "Habit", "Cadence", "Today", "Streak"}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
