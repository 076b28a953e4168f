package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr            = ":8080"
	defaultDatabaseURL     = "file:clubfloor.db?cache=shared"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTAccessTTL    = "24h"
	defaultAccrualInterval = "1m"
	defaultAccrualEnabled  = "true"
)

type RuntimeConfig struct {
	AppEnv          string
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	JWTAccessTTL    time.Duration
	AccrualEnabled  bool
	AccrualInterval time.Duration
}

func LoadRuntimeConfig() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = strings.TrimSpace(getEnv("ADDR", defaultAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.AccrualInterval, err = parseDurationEnv("ACCRUAL_INTERVAL", defaultAccrualInterval)
	if err != nil {
		return nil, err
	}
	cfg.AccrualEnabled = parseBoolEnv("ACCRUAL_ENABLED", defaultAccrualEnabled)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("runtime config: env=%s addr=%s accrual_enabled=%t accrual_interval=%s",
		cfg.AppEnv, cfg.Addr, cfg.AccrualEnabled, cfg.AccrualInterval)

	return cfg, nil
}

func validateConfig(cfg *RuntimeConfig) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.AccrualInterval <= 0 {
		return fmt.Errorf("ACCRUAL_INTERVAL must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.DatabaseURL, defaultDatabaseURL) {
			return fmt.Errorf("in prod/release DATABASE_URL must point at postgres, not the dev sqlite file")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
