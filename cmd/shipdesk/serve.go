package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/harborline/shipdesk"
	shiphttp "github.com/harborline/shipdesk/http"
)

// Run executes the serve command. It blocks until the context is cancelled
// or the process receives SIGINT or SIGTERM.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	s := shiphttp.NewServer()
	s.Addr = cfg.Addr
	s.Logger = deps.Logger
	s.MaxUploadSize = cfg.maxUploadBytes()
	s.Limiter = shiphttp.NewClientLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	s.ShipService = deps.Ships
	s.UserService = deps.Users
	s.UploadStore = deps.Uploads
	s.DocumentReader = deps.Reader
	s.FieldExtractor = deps.Extractor

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shipdesk.ErrorMessage(err))
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}
	deps.Logger.Info("listening", "url", s.URL(), "db", cfg.DBPath, "uploads", cfg.UploadDir)

	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	deps.Logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := s.Close(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
