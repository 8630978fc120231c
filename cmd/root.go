package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/brk3/habitlog/internal/apiclient"
	"github.com/brk3/habitlog/internal/config"
	"github.com/brk3/habitlog/internal/logger"
	"github.com/brk3/habitlog/pkg/habit"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Track daily and weekly habits and their streaks",
	Long: `
	Habits tracks recurring habits and the days you complete them, and derives
	streaks, best weeks and completion rates from that log. Run "habits server"
	to own the database; every other command talks to the server's API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		logger.Setup(os.Stderr, cfg.LogFormat, logger.ParseLevel(cfg.LogLevel))
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(cfg.APIBaseURL, cfg.AuthToken)
}

// dateArg returns args[i] when present and valid, else today.
func dateArg(args []string, i int) (string, error) {
	if len(args) <= i {
		return habit.FormatDate(time.Now()), nil
	}
	if _, err := habit.ParseDate(args[i]); err != nil {
		return "", err
	}
	return args[i], nil
}
