package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brk3/habitlog/internal/logger"
	"github.com/brk3/habitlog/internal/server"
	"github.com/brk3/habitlog/internal/storage/bolt"
	"github.com/brk3/habitlog/internal/tracker"
	"github.com/spf13/cobra"
)

var listenAddr string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long: `The "server" command opens the habit database and serves the habits API.
Only one server may own a database file at a time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}

		backend, err := bolt.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open db %s: %w", cfg.DBPath, err)
		}
		st, err := tracker.Open(backend)
		if err != nil {
			_ = backend.Close()
			return err
		}
		defer func() {
			if err := st.Close(); err != nil {
				logger.Error("Failed to close habit store", "error", err)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(cfg, st, backend).Run(ctx)
	},
}

func init() {
	serverCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address, overrides listen_addr from config")
	rootCmd.AddCommand(serverCmd)
}
