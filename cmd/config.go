package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SequenceBackendPostgres = "postgres"
	SequenceBackendRedis    = "redis"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel       string
	LogDevelopment bool

	DispatchNumberPrefix string
	DispatchTimezone     string

	SequenceBackend string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	KafkaHost                string
	KafkaDispatchEventsTopic string
	EventPublishConcurrency  int
	EventPublishTimeout      time.Duration

	OtelEndpoint string

	SequenceRetentionDays int
	SequencePruneSchedule string
	SummaryReportSchedule string
}

// LoadConfig reads the process environment after merging envFile into it.
// A missing envFile is not an error; variables already set win over the
// file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := Config{
		HTTPPort:   env("HTTP_PORT", "8080"),
		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: env("DB_PASSWORD", ""),
		DBName:     env("DB_NAME", "fulfillment"),
		DBSslMode:  env("DB_SSLMODE", "disable"),

		LogLevel: env("LOG_LEVEL", "info"),

		DispatchNumberPrefix: env("DISPATCH_NUMBER_PREFIX", "DN"),
		DispatchTimezone:     env("DISPATCH_TIMEZONE", "UTC"),

		SequenceBackend: strings.ToLower(env("SEQUENCE_BACKEND", SequenceBackendPostgres)),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   env("REDIS_PASSWORD", ""),

		KafkaHost:                env("KAFKA_HOST", ""),
		KafkaDispatchEventsTopic: env("KAFKA_DISPATCH_EVENTS_TOPIC", "dispatch-events"),

		OtelEndpoint: env("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		SequencePruneSchedule: env("SEQUENCE_PRUNE_SCHEDULE", "15 3 * * *"),
		SummaryReportSchedule: env("SUMMARY_REPORT_SCHEDULE", "*/15 * * * *"),
	}

	var err error
	if cfg.LogDevelopment, err = envBool("LOG_DEVELOPMENT", false); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.SequenceRetentionDays, err = envInt("SEQUENCE_RETENTION_DAYS", 35); err != nil {
		return Config{}, err
	}
	if cfg.EventPublishConcurrency, err = envInt("EVENT_PUBLISH_CONCURRENCY", 4); err != nil {
		return Config{}, err
	}
	if cfg.EventPublishTimeout, err = envDuration("EVENT_PUBLISH_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if err = cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []error
	if c.SequenceBackend != SequenceBackendPostgres && c.SequenceBackend != SequenceBackendRedis {
		problems = append(problems, fmt.Errorf("SEQUENCE_BACKEND must be %q or %q, got %q",
			SequenceBackendPostgres, SequenceBackendRedis, c.SequenceBackend))
	}
	if _, err := time.LoadLocation(c.DispatchTimezone); err != nil {
		problems = append(problems, fmt.Errorf("DISPATCH_TIMEZONE: %w", err))
	}
	if c.SequenceRetentionDays < 1 {
		problems = append(problems, errors.New("SEQUENCE_RETENTION_DAYS must be at least 1"))
	}
	if c.EventPublishConcurrency < 1 {
		problems = append(problems, errors.New("EVENT_PUBLISH_CONCURRENCY must be at least 1"))
	}
	if c.EventPublishTimeout <= 0 {
		problems = append(problems, errors.New("EVENT_PUBLISH_TIMEOUT must be positive"))
	}
	return errors.Join(problems...)
}

// Location is the zone dispatch number days are counted in.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DispatchTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
