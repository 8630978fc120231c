package cmd

import (
	"fmt"

	"github.com/brk3/habitlog/internal/preferences"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := newClient()

		var (
			t   preferences.Theme
			err error
		)
		switch {
		case len(args) == 0:
			t, err = c.Theme(ctx)
		case args[0] == "toggle":
			t, err = c.ToggleTheme(ctx)
		default:
			t, err = preferences.ParseTheme(args[0])
			if err == nil {
				t, err = c.SetTheme(ctx, t)
			}
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", t)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
