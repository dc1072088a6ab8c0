package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogeecn/nchc-wrapper/internal/config"
	"github.com/rogeecn/nchc-wrapper/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

type serveRunner interface {
	Start() error
	Stop(ctx context.Context) error
}

var (
	serveHost     string
	servePort     int
	serveLogLevel string
)

var (
	newServeServer = func(cfg *config.Config) serveRunner {
		return server.New(cfg)
	}
	signalNotifyContext = signal.NotifyContext
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "啟動 HTTP 服務",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "監聽位址 (預設: 從 NCHC_HOST 讀取)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "監聽埠號 (預設: 從 NCHC_PORT 讀取)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "日誌等級 (預設: 從 NCHC_LOG_LEVEL 讀取)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	if serveLogLevel != "" {
		cfg.LogLevel = serveLogLevel
	}

	log.Logger = config.InitLogger(cfg.LogLevel, cfg.LogFile)
	log.Info().
		Str("log_level", cfg.LogLevel).
		Str("log_file", cfg.LogFile).
		Msg("logger initialized")

	srv := newServeServer(cfg)

	startErrCh := make(chan error, 1)
	go func() {
		startErrCh <- srv.Start()
	}()

	ctx, stop := signalNotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-startErrCh:
		if err != nil {
			log.Error().Err(err).Msg("serve exited with error")
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("serve shutdown failed")
			return err
		}

		select {
		case err := <-startErrCh:
			if err != nil {
				log.Error().Err(err).Msg("serve exited after shutdown with error")
			}
			return err
		case <-time.After(shutdownTimeout):
			log.Error().Msg("serve shutdown timed out")
			return fmt.Errorf("shutdown timeout")
		}
	}
}
