package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/passforge/passforge-go/internal/engine"
)

const devJWTSecret = "dev-secret-change-in-production"

// ErrInsecureSecret rejects the development JWT secret in production.
var ErrInsecureSecret = errors.New("JWT_SECRET must be set in production environment")

// Config holds the API server settings read from the environment.
type Config struct {
	Port           string
	Env            string
	DatabaseDSN    string
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
	RandomSource   string
	DefaultLength  int
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		DatabaseDSN:  getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passforge?parseTime=true"),
		JWTSecret:    getEnv("JWT_SECRET", devJWTSecret),
		RandomSource: getEnv("RANDOM_SOURCE", "crypto"),
	}

	var err error
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20")); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	if cfg.DefaultLength, err = strconv.Atoi(getEnv("DEFAULT_LENGTH", strconv.Itoa(engine.DefaultLength))); err != nil {
		return Config{}, fmt.Errorf("DEFAULT_LENGTH: %w", err)
	}
	if err := engine.CheckLength(cfg.DefaultLength); err != nil {
		return Config{}, fmt.Errorf("DEFAULT_LENGTH: %w", err)
	}

	switch cfg.RandomSource {
	case "crypto", "math":
	default:
		return Config{}, fmt.Errorf("RANDOM_SOURCE must be crypto or math, got %q", cfg.RandomSource)
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		return Config{}, ErrInsecureSecret
	}

	return cfg, nil
}

// Source returns the engine randomness source selected by RandomSource.
func (c Config) Source() engine.Source {
	if c.RandomSource == "math" {
		return engine.NewMathSource(uint64(time.Now().UnixNano()))
	}
	return engine.NewCryptoSource()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
