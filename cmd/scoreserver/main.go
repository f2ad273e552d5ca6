// Command scoreserver hosts a shared microtetris high-score table.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/KaiqueGovani/microtetris/internal/scoreapi"
	"github.com/KaiqueGovani/microtetris/internal/scores"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := scores.OpenSQLite(getEnv("SCORE_DB", "./data/scores.db"), log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("open score database")
	}
	defer db.Close()

	apiKey := os.Getenv("SCORE_API_KEY")
	if apiKey == "" {
		log.Warn().Msg("SCORE_API_KEY not set, accepting anonymous writes")
	}

	port := getEnv("PORT", "5176")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           scoreapi.New(db, apiKey, log.Logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Info().Str("port", port).Msg("starting scoreserver")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server exited")
		return
	}
	log.Info().Msg("scoreserver stopped")
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
