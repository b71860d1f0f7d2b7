// Package config holds the server settings and their environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidConfig indicates invalid configuration values.
var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables read by Load.
const (
	EnvAddr           = "CHESS_ADDR"
	EnvAllowedOrigins = "CHESS_ALLOWED_ORIGINS"
	EnvSearchDepth    = "CHESS_SEARCH_DEPTH"
	EnvSeed           = "CHESS_SEED"
	EnvLogDev         = "CHESS_LOG_DEV"
)

type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// AllowedOrigins is the comma separated CORS origin list, also used for websockets.
	AllowedOrigins string
	// SearchDepth is the minimax depth in plies.
	SearchDepth int
	// Seed seeds the computer's randomness. Zero means time based.
	Seed int64
	// LogDev switches to the human readable development logger.
	LogDev bool
}

func Default() Config {
	return Config{
		Addr:           ":3000",
		AllowedOrigins: "http://localhost:5173",
		SearchDepth:    2,
	}
}

// Load returns the defaults overlaid with any set environment variables.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvAddr); ok {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvAllowedOrigins); ok {
		cfg.AllowedOrigins = v
	}
	if v, ok := lookup(EnvSearchDepth); ok {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvSearchDepth, v, ErrInvalidConfig)
		}
		cfg.SearchDepth = depth
	}
	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvSeed, v, ErrInvalidConfig)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup(EnvLogDev); ok {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvLogDev, v, ErrInvalidConfig)
		}
		cfg.LogDev = dev
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("empty listen address: %w", ErrInvalidConfig)
	}
	if c.SearchDepth < 1 {
		return fmt.Errorf("search depth %d < 1: %w", c.SearchDepth, ErrInvalidConfig)
	}
	return nil
}

// Origins splits AllowedOrigins into its trimmed, non-empty entries.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
