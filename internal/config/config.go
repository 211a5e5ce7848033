package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAddr        = ":4000"
	defaultDatabaseURL = "studyrooms.db"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultJWTTTL      = "24h"
	defaultTimezone    = "Europe/Berlin"

	defaultMaxDurationMinutes     = "180"
	defaultMaxActiveBookings      = "3"
	defaultMaxAdvanceDays         = "14"
	defaultSlotGranularityMinutes = "30"
)

type Config struct {
	AppEnv      string
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	Location    *time.Location

	// fair-use policy knobs
	MaxDurationMinutes     int
	MaxActiveBookings      int
	MaxAdvanceDays         int
	SlotGranularityMinutes int
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = strings.TrimSpace(getEnv("ADDR", defaultAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	tz := strings.TrimSpace(getEnv("VENUE_TIMEZONE", defaultTimezone))
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid VENUE_TIMEZONE value %q: %w", tz, err)
	}

	cfg.MaxDurationMinutes, err = parseIntEnv("MAX_DURATION_MINUTES", defaultMaxDurationMinutes)
	if err != nil {
		return nil, err
	}
	cfg.MaxActiveBookings, err = parseIntEnv("MAX_ACTIVE_BOOKINGS", defaultMaxActiveBookings)
	if err != nil {
		return nil, err
	}
	cfg.MaxAdvanceDays, err = parseIntEnv("MAX_ADVANCE_DAYS", defaultMaxAdvanceDays)
	if err != nil {
		return nil, err
	}
	cfg.SlotGranularityMinutes, err = parseIntEnv("SLOT_GRANULARITY_MINUTES", defaultSlotGranularityMinutes)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.MaxDurationMinutes <= 0 {
		return fmt.Errorf("MAX_DURATION_MINUTES must be > 0")
	}
	if cfg.MaxActiveBookings <= 0 {
		return fmt.Errorf("MAX_ACTIVE_BOOKINGS must be > 0")
	}
	if cfg.MaxAdvanceDays <= 0 {
		return fmt.Errorf("MAX_ADVANCE_DAYS must be > 0")
	}
	if cfg.SlotGranularityMinutes <= 0 {
		return fmt.Errorf("SLOT_GRANULARITY_MINUTES must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
