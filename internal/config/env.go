package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Env holds settings read from the environment (and an optional .env file).
type Env struct {
	DBPath   string // STRIKE5_DB
	SSHAddr  string // STRIKE5_SSH_ADDR
	HTTPAddr string // STRIKE5_HTTP_ADDR
	Config   string // STRIKE5_CONFIG
}

// Default values used when the environment leaves a setting unset.
const (
	DefaultDBPath   = "~/.strike5/scores.db"
	DefaultSSHAddr  = ":2222"
	DefaultHTTPAddr = ":8080"
)

// LoadEnv reads the environment, loading .env first if it exists.
// Variables already set in the process take precedence over .env.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		DBPath:   getEnv("STRIKE5_DB", DefaultDBPath),
		SSHAddr:  getEnv("STRIKE5_SSH_ADDR", DefaultSSHAddr),
		HTTPAddr: getEnv("STRIKE5_HTTP_ADDR", DefaultHTTPAddr),
		Config:   getEnv("STRIKE5_CONFIG", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
