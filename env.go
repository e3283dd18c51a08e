package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Env holds the settings read from the environment (and .env, if present).
type Env struct {
	LogLevel   string
	ScoresFile string
	Seed       int64
}

func loadEnv() Env {
	_ = godotenv.Load()
	env := Env{
		LogLevel:   getEnv("LOG_LEVEL", "debug"),
		ScoresFile: strings.TrimSpace(os.Getenv("TETRIGO_SCORES_FILE")),
	}
	if raw := strings.TrimSpace(os.Getenv("TETRIGO_SEED")); raw != "" {
		if seed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			env.Seed = seed
		}
	}
	return env
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
