package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes <habit-id> <YYYY-MM-DD> <text>...",
	Short: "Attach notes to a marked day",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateArg(args, 1)
		if err != nil {
			return err
		}
		notes := strings.Join(args[2:], " ")
		if err := newClient().SetCompletionNotes(cmd.Context(), args[0], date, notes); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved notes for %s on %s\n", args[0], date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notesCmd)
}
