package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [habit-id]",
	Short: "Show statistics for one habit or across all habits",
	Long: `The "stats" command shows streaks, best week and completion rate for a
habit, or today's totals across all habits when no id is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := newClient()
		p := currentPalette(ctx, c)

		if len(args) == 0 {
			o, err := c.OverallStats(ctx)
			if err != nil {
				return err
			}
			rows := [][]string{
				{"Habits", strconv.Itoa(o.TotalHabits)},
				{"Completions", strconv.Itoa(o.TotalCompletions)},
				{"Done today", strconv.Itoa(o.ActiveHabits)},
				{"Today's rate", percent(o.CompletionRate)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.table([]string{"Overall", ""}, rows))
			return nil
		}

		h, err := c.GetHabit(ctx, args[0])
		if err != nil {
			return err
		}
		st, err := c.GetHabitStats(ctx, args[0])
		if err != nil {
			return err
		}
		rows := [][]string{
			{"Current streak", strconv.Itoa(st.CurrentStreak)},
			{"Longest streak", strconv.Itoa(st.LongestStreak)},
			{"Completions", strconv.Itoa(st.TotalCompletions)},
			{"Completion rate", percent(st.CompletionRate)},
			{"Best week", bestWeekCell(st.BestWeek)},
		}
		fmt.Fprintln(cmd.OutOrStdout(), p.table([]string{swatch(*h), ""}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
