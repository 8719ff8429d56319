// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Configuration structs declare their variables through `env` field tags:
//
//	type StoreConfig struct {
//		URL     string        `env:"FLAGS_REDIS_URL,required"`
//		Timeout time.Duration `env:"FLAGS_TIMEOUT" envDefault:"5s"`
//	}
//
//	cfg, err := config.Load[StoreConfig]()
package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed
// into the config struct.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

var dotenvOnce sync.Once

// Load parses environment variables into a fresh value of type T. A .env
// file in the working directory is loaded once per process before the first
// parse; a missing file is not an error.
func Load[T any]() (T, error) {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	cfg, err := env.ParseAs[T]()
	if err != nil {
		var zero T
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is like Load but panics on failure. Intended for application
// startup where a missing variable should prevent the process from running.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(err)
	}
	return cfg
}
