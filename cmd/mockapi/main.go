// Command mockapi runs the local development stand-in for the TaskFlow
// service. It seeds a handful of accounts and a job corpus, then serves the
// auth, task, activity, and job-search endpoints the SDK consumes.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskflow/taskflow-go/internal/infrastructure/config"
	"github.com/taskflow/taskflow-go/internal/mockapi"
	"github.com/taskflow/taskflow-go/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	store, err := mockapi.NewStore(mockapi.DefaultSeed)
	if err != nil {
		log.Fatal().Err(err).Msg("mockapi: seed store")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := mockapi.NewRecorder(0, store, log)
	recorder.Start(ctx)

	issuer := mockapi.NewTokenIssuer(cfg.MockAPI.JWTSecret, cfg.MockAPI.TokenTTL)
	e := mockapi.NewRouter(store, recorder, issuer, log)

	go func() {
		log.Info().Str("port", cfg.MockAPI.Port).Msg("mockapi: listening")
		if err := e.Start(":" + cfg.MockAPI.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("mockapi: server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mockapi: shutdown")
	}
}
