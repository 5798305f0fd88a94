package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaswelder/minisql"
	"github.com/gaswelder/minisql/server"
)

// serve runs the HTTP server until it fails or the process is told to stop.
func serve(cfg *Config, session *minisql.Session, state *stateFile, logger zerolog.Logger) error {
	srv := server.New(cfg.HTTP.Addr, session, logger)
	srv.OnChange = state.save

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
