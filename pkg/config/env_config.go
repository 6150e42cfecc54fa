// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvironmentConfig contains runtime settings read from ORRERY_* env
// vars: loop rates, service ports and the asset/resource knobs. Scene
// content stays in the JSON SimulationConfig; this is everything an
// operator would tweak per deployment instead of per scene.
type EnvironmentConfig struct {
	TickRate    int // simulation ticks per second in headless mode
	HealthPort  int
	MetricsPort int

	// Asset loading
	AssetTimeout    time.Duration
	AssetMaxRetries int

	// Circuit breaker for asset fetches
	BreakerMaxRequests         int
	BreakerInterval            time.Duration
	BreakerTimeout             time.Duration
	BreakerMaxConsecutiveFails int

	// Resource management
	MaxMemoryMB           int64
	MaxGoroutines         int
	ShutdownTimeout       time.Duration
	ResourceCheckInterval time.Duration
}

// LoadConfigFromEnv reads the environment configuration, applying
// defaults for unset variables and validating the result.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	cfg := &EnvironmentConfig{
		TickRate:                   getEnvInt("ORRERY_TICK_RATE", 60),
		HealthPort:                 getEnvInt("ORRERY_HEALTH_PORT", 8080),
		MetricsPort:                getEnvInt("ORRERY_METRICS_PORT", 9090),
		AssetTimeout:               getEnvDuration("ORRERY_ASSET_TIMEOUT", 10*time.Second),
		AssetMaxRetries:            getEnvInt("ORRERY_ASSET_MAX_RETRIES", 3),
		BreakerMaxRequests:         getEnvInt("ORRERY_BREAKER_MAX_REQUESTS", 3),
		BreakerInterval:            getEnvDuration("ORRERY_BREAKER_INTERVAL", 60*time.Second),
		BreakerTimeout:             getEnvDuration("ORRERY_BREAKER_TIMEOUT", 30*time.Second),
		BreakerMaxConsecutiveFails: getEnvInt("ORRERY_BREAKER_MAX_CONSECUTIVE_FAILS", 5),
		MaxMemoryMB:                int64(getEnvInt("ORRERY_MAX_MEMORY_MB", 500)),
		MaxGoroutines:              getEnvInt("ORRERY_MAX_GOROUTINES", 100),
		ShutdownTimeout:            getEnvDuration("ORRERY_SHUTDOWN_TIMEOUT", 30*time.Second),
		ResourceCheckInterval:      getEnvDuration("ORRERY_RESOURCE_CHECK_INTERVAL", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the environment configuration for sane values
func (c *EnvironmentConfig) Validate() error {
	if c.TickRate < 1 || c.TickRate > 1000 {
		return fmt.Errorf("tick rate %d outside [1, 1000]", c.TickRate)
	}
	if c.HealthPort < 1 || c.HealthPort > 65535 {
		return fmt.Errorf("health port %d outside [1, 65535]", c.HealthPort)
	}
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("metrics port %d outside [1, 65535]", c.MetricsPort)
	}
	if c.AssetTimeout <= 0 {
		return fmt.Errorf("asset timeout must be positive, got %v", c.AssetTimeout)
	}
	if c.AssetMaxRetries < 0 {
		return fmt.Errorf("asset max retries must be >= 0, got %d", c.AssetMaxRetries)
	}
	if c.BreakerMaxRequests < 1 {
		return fmt.Errorf("breaker max requests must be >= 1, got %d", c.BreakerMaxRequests)
	}
	if c.BreakerMaxConsecutiveFails < 1 {
		return fmt.Errorf("breaker max consecutive fails must be >= 1, got %d", c.BreakerMaxConsecutiveFails)
	}
	if c.MaxMemoryMB < 1 {
		return fmt.Errorf("max memory must be >= 1 MB, got %d", c.MaxMemoryMB)
	}
	if c.MaxGoroutines < 1 {
		return fmt.Errorf("max goroutines must be >= 1, got %d", c.MaxGoroutines)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout)
	}
	if c.ResourceCheckInterval <= 0 {
		return fmt.Errorf("resource check interval must be positive, got %v", c.ResourceCheckInterval)
	}
	return nil
}

// getEnvInt reads an integer env var, returning the default when unset
// or unparseable.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvDuration reads a duration env var (e.g. "30s"), returning the
// default when unset or unparseable.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
