package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
)

// Config carries environment-driven settings for the API, worker and reconciler processes.
type Config struct {
	Port              string
	Environment       string
	LogLevel          string
	PostgresDSN       string
	AutoMigrate       bool
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	ReconcileTimeout  time.Duration
	TraceSampleRatio  float64
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		Environment:       envDefault("ENVIRONMENT", "local"),
		LogLevel:          envDefault("LOG_LEVEL", "info"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		AutoMigrate:       !isFalsy(os.Getenv("POSTGRES_AUTO_MIGRATE")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		ReconcileTimeout:  5 * time.Minute,
		TraceSampleRatio:  1,
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	if raw := strings.TrimSpace(os.Getenv("RECONCILE_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("RECONCILE_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.ReconcileTimeout = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("TRACE_SAMPLE_RATIO")); raw != "" {
		ratio, err := strconv.ParseFloat(raw, 64)
		if err != nil || ratio < 0 || ratio > 1 {
			return Config{}, fmt.Errorf("TRACE_SAMPLE_RATIO must be between 0 and 1, got %q", raw)
		}
		cfg.TraceSampleRatio = ratio
	}
	return cfg, nil
}

// Observability returns the instrumentation settings for the named process.
func (c Config) Observability(serviceName string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName: serviceName,
		Environment: c.Environment,
		LogLevel:    c.LogLevel,
		SampleRatio: c.TraceSampleRatio,
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func isFalsy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "0" || value == "false" || value == "no"
}
