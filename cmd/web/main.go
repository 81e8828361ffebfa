package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"thirdcoast.systems/photoedit/cmd/web/internal/web"
	"thirdcoast.systems/photoedit/cmd/web/session"
	"thirdcoast.systems/photoedit/internal/config"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: conf.SlogLevel(),
	})))

	s, err := web.NewWebserver(ctx, conf, session.NewManager(conf.SessionSecret))
	if err != nil {
		slog.Error("failed to create webserver", "error", err)
		os.Exit(1)
	}

	if err := serve(ctx, s, ":"+strconv.Itoa(conf.WebServerPort)); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Stopped")
}

// serve runs s until ctx is cancelled, then drains open requests.
func serve(ctx context.Context, s *web.Webserver, addr string) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutdown incomplete", "error", err)
		}
	}()

	slog.Info("Listening", "addr", addr)
	err := s.Start(addr)
	if errors.Is(err, http.ErrServerClosed) || ctx.Err() != nil {
		return nil
	}
	return err
}
