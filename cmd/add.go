package cmd

import (
	"fmt"

	"github.com/brk3/habitlog/pkg/habit"
	"github.com/spf13/cobra"
)

var (
	addDescription string
	addFrequency   string
	addGoal        int
	addColor       string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a habit",
	Long: `The "add" command creates a habit. Weekly habits take a goal: the number
of completions expected per week.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newClient().AddHabit(cmd.Context(), habit.HabitInput{
			Title:       args[0],
			Description: addDescription,
			Frequency:   habit.Frequency(addFrequency),
			Goal:        addGoal,
			Color:       addColor,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added habit %q (%s)\n", h.Title, h.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "habit description")
	addCmd.Flags().StringVarP(&addFrequency, "frequency", "f", string(habit.Daily), "daily or weekly")
	addCmd.Flags().IntVarP(&addGoal, "goal", "g", 1, "completions expected per week for weekly habits")
	addCmd.Flags().StringVarP(&addColor, "color", "c", "", "display color, e.g. #2ECC71")
	rootCmd.AddCommand(addCmd)
}
