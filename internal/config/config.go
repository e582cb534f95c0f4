package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSecretKey = "change_me_in_production"

type Config struct {
	Port     string
	DBPath   string
	Location *time.Location
	LogLevel string

	SecretKey    string
	CookieSecure bool

	SubmissionDelay     time.Duration
	DraftDebounce       time.Duration
	RegistrationLatency time.Duration
	HandoffTokenTTL     time.Duration

	IntakeIdleTTL    time.Duration
	BookingIdleTTL   time.Duration
	BookingRetention time.Duration
	DraftRetention   time.Duration
	PurgeSchedule    string

	IntakeCreateLimit  int
	IntakeCreateWindow time.Duration

	RandomSeed uint64
}

// Load reads the environment, after merging a .env file when one exists.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var errs []error
	duration := func(key string, def time.Duration) time.Duration {
		value, err := getDurationEnv(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return value
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		DBPath:   getEnv("DB_PATH", filepath.Join("data", "hospitalconnect.db")),
		Location: loadLocation(getEnv("TZ", "UTC")),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SecretKey:    getEnv("SECRET_KEY", defaultSecretKey),
		CookieSecure: getBoolEnv("COOKIE_SECURE", false),

		SubmissionDelay:     duration("SUBMISSION_DELAY", 2*time.Second),
		DraftDebounce:       duration("DRAFT_DEBOUNCE", time.Second),
		RegistrationLatency: duration("REGISTRATION_LATENCY", 2*time.Second),
		HandoffTokenTTL:     duration("HANDOFF_TOKEN_TTL", 15*time.Minute),

		IntakeIdleTTL:    duration("INTAKE_IDLE_TTL", 2*time.Hour),
		BookingIdleTTL:   duration("BOOKING_IDLE_TTL", 2*time.Hour),
		BookingRetention: duration("BOOKING_RETENTION", 30*24*time.Hour),
		DraftRetention:   duration("DRAFT_RETENTION", 7*24*time.Hour),
		PurgeSchedule:    getEnv("PURGE_SCHEDULE", "@every 10m"),

		IntakeCreateWindow: duration("INTAKE_CREATE_WINDOW", time.Minute),
	}

	limit, err := strconv.Atoi(getEnv("INTAKE_CREATE_LIMIT", "30"))
	if err != nil || limit <= 0 {
		errs = append(errs, fmt.Errorf("INTAKE_CREATE_LIMIT must be a positive integer"))
	}
	cfg.IntakeCreateLimit = limit

	if raw := os.Getenv("RANDOM_SEED"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("RANDOM_SEED: %w", err))
		}
		cfg.RandomSeed = seed
	} else {
		cfg.RandomSeed = uint64(time.Now().UnixNano())
	}

	if len(cfg.SecretKey) < 32 && cfg.SecretKey != defaultSecretKey {
		errs = append(errs, fmt.Errorf("SECRET_KEY must be at least 32 bytes"))
	}
	return cfg, errors.Join(errs...)
}

// UsesDefaultSecret reports whether SECRET_KEY was left unset.
func (cfg *Config) UsesDefaultSecret() bool {
	return cfg.SecretKey == defaultSecretKey
}

func getEnv(key string, def string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 {
		return def, fmt.Errorf("%s must be a non-negative duration like 2s or 15m", key)
	}
	return value, nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}
