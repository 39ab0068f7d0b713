package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries the demo caller's wiring knobs. Everything is optional:
// with no brokers configured the engine runs fully in-process.
type Config struct {
	Brokers  []string // Kafka brokers for event publishing; empty disables it
	LogLevel string
}

// Load reads an optional .env file and then the environment. A missing
// .env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := Config{
		LogLevel: os.Getenv("LEDGER_LOG_LEVEL"),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if v := os.Getenv("LEDGER_BROKERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Brokers = append(cfg.Brokers, b)
			}
		}
	}
	return cfg, nil
}
