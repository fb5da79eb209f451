package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openabi/calldata-guesser/pkg/logger"
	"github.com/openabi/calldata-guesser/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP calldata-guesser service",
	Long: `serve starts the HTTP API, the badger-backed history store, the
hot in-process cache, and the periodic history eviction job as one
long-lived process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := service.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}

		log := logger.New(cfg.Environment)
		srv, err := service.NewServer(cfg, log)
		if err != nil {
			return fmt.Errorf("serve: starting server: %w", err)
		}
		defer srv.Close()

		retention := time.Duration(cfg.HistoryRetentionHours) * time.Hour
		scheduler, err := service.NewEvictionScheduler(cfg.EvictionCron, log, func() {
			if _, err := srv.EvictStale(retention); err != nil {
				log.Warn("eviction sweep failed", "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("serve: starting eviction scheduler: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-sigCh:
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
