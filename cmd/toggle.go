package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <habit-id> [YYYY-MM-DD]",
	Short: "Mark a habit done or not done for a day",
	Long: `The "toggle" command flips a habit's completion for a day, today by default.
Toggling an unmarked day marks it done.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateArg(args, 1)
		if err != nil {
			return err
		}
		done, err := newClient().ToggleCompletion(cmd.Context(), args[0], date)
		if err != nil {
			return err
		}
		state := "not done"
		if done {
			state = "done"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", args[0], date, state)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
