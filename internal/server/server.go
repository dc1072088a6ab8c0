package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rogeecn/nchc-wrapper/internal/config"
	"github.com/rogeecn/nchc-wrapper/internal/upstream"
	"github.com/rogeecn/nchc-wrapper/pkg/types"
	"github.com/rs/zerolog/log"
)

type upstreamClient interface {
	Send(ctx context.Context, payload *types.ChatCompletionRequest, apiKey string) ([]byte, error)
}

type Server struct {
	config     *config.Config
	upstream   upstreamClient
	httpServer *http.Server

	serveFn    func() error
	shutdownFn func(ctx context.Context) error
}

func New(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = &config.Config{}
	}

	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultBaseURL
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodySize
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	s := &Server{
		config:   cfg,
		upstream: upstream.New(cfg),
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.setupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.serveFn = s.httpServer.ListenAndServe
	s.shutdownFn = s.httpServer.Shutdown

	return s
}

func (s *Server) Start() error {
	event := log.Info().
		Str("addr", s.httpServer.Addr).
		Str("upstream", s.config.BaseURL).
		Bool("api_key_configured", s.config.APIKeyConfigured())
	event.Msg("http server starting")

	if !s.config.APIKeyConfigured() {
		log.Warn().Msg("NCHC_API_KEY is not set; chat routes will fail until it is configured")
	}

	if err := s.serveFn(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if err := s.shutdownFn(ctx); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("stop server: %w", err)
	}
	return nil
}

// Handler exposes the routed handler, mainly for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
