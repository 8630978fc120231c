package cmd

import (
	"fmt"
	"time"

	"github.com/brk3/habitlog/internal/nudge"
	"github.com/brk3/habitlog/internal/nudge/resend"

	"github.com/spf13/cobra"
)

var nudgeThreshold int

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Send a reminder for habit streaks expiring within a certain window",
	Long: `The "nudge" command emails a reminder listing habits done yesterday but not
yet today, when no more than --threshold hours remain before midnight. Run it
from cron.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Nudge.ResendAPIKey == "" {
			return fmt.Errorf("HABITS_RESEND_API_KEY environment variable or nudge.resend_api_key is not set")
		}
		if cfg.Nudge.NotifyEmail == "" {
			return fmt.Errorf("HABITS_NOTIFY_EMAIL environment variable or nudge.notify_email is not set")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		n := resend.ResendNotifier{
			ApiKey: cfg.Nudge.ResendAPIKey,
			Email:  cfg.Nudge.NotifyEmail,
			From:   cfg.Nudge.From,
		}
		sent, err := nudge.Nudge(cmd.Context(), newClient(), &n, time.Now(), nudgeThreshold)
		if err != nil {
			return err
		}
		if sent {
			fmt.Fprintln(cmd.OutOrStdout(), "Reminder sent")
		}
		return nil
	},
}

func init() {
	nudgeCmd.Flags().IntVar(&nudgeThreshold, "threshold", 4, "only nudge when this many hours or fewer remain today")
	rootCmd.AddCommand(nudgeCmd)
}
