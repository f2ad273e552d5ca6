package main

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	envKeys        = "MICROTETRIS_KEYS"
	envScoreAPIURL = "MICROTETRIS_SCORE_API_URL"
	envScoreAPIKey = "MICROTETRIS_SCORE_API_KEY"
	envScoreSync   = "MICROTETRIS_SCORE_SYNC"
)

// Set with -ldflags "-X main.defaultScoreAPIURL=..." for release builds.
var (
	defaultScoreAPIURL string
	defaultScoreAPIKey string
)

// loadEnv reads .env from the working directory, then fills in the
// link-time defaults. Neither overrides variables already set.
func loadEnv() {
	_ = godotenv.Load()
	setDefaultEnv(envScoreAPIURL, defaultScoreAPIURL)
	setDefaultEnv(envScoreAPIKey, defaultScoreAPIKey)
}

func setDefaultEnv(key, value string) {
	if value == "" {
		return
	}
	if _, exists := os.LookupEnv(key); !exists {
		_ = os.Setenv(key, value)
	}
}
