package cmd

import (
	"fmt"

	"github.com/brk3/habitlog/pkg/habit"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <habit-id>",
	Short: "Change a habit's fields",
	Long:  `The "edit" command updates only the fields whose flags are given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var p habit.HabitPatch
		if flags.Changed("title") {
			v, _ := flags.GetString("title")
			p.Title = &v
		}
		if flags.Changed("description") {
			v, _ := flags.GetString("description")
			p.Description = &v
		}
		if flags.Changed("frequency") {
			v, _ := flags.GetString("frequency")
			f := habit.Frequency(v)
			p.Frequency = &f
		}
		if flags.Changed("goal") {
			v, _ := flags.GetInt("goal")
			p.Goal = &v
		}
		if flags.Changed("color") {
			v, _ := flags.GetString("color")
			p.Color = &v
		}
		if p == (habit.HabitPatch{}) {
			return fmt.Errorf("nothing to change: pass at least one of --title, --description, --frequency, --goal, --color")
		}

		if err := newClient().UpdateHabit(cmd.Context(), args[0], p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated habit %s\n", args[0])
		return nil
	},
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().StringP("description", "d", "", "new description")
	editCmd.Flags().StringP("frequency", "f", "", "daily or weekly")
	editCmd.Flags().IntP("goal", "g", 0, "completions expected per week")
	editCmd.Flags().StringP("color", "c", "", "display color")
	rootCmd.AddCommand(editCmd)
}
