// Package asset fetches external resources, most importantly the ship
// model, behind a circuit breaker with bounded retries. The simulation
// starts immediately; the ship only begins flying once its model load
// has been reported successful.
package asset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/logging"
)

// Loader wraps asset fetches with circuit breaker protection, retry
// logic and exponential backoff, and publishes load results on the
// event bus.
type Loader struct {
	breaker  *gobreaker.CircuitBreaker
	client   *http.Client
	logger   *logging.Logger
	config   *config.EnvironmentConfig
	eventBus *event.Bus
}

// Operation represents one asset fetch attempt
type Operation func() ([]byte, error)

// NewLoader creates a Loader with the circuit breaker configured from
// environment settings.
func NewLoader(envConfig *config.EnvironmentConfig, eventBus *event.Bus) *Loader {
	logger := logging.NewLogger()

	settings := gobreaker.Settings{
		Name:        "orrery-assets",
		MaxRequests: uint32(envConfig.BreakerMaxRequests),
		Interval:    envConfig.BreakerInterval,
		Timeout:     envConfig.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(envConfig.BreakerMaxConsecutiveFails)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "circuit breaker state changed",
				"name", name,
				"from", from,
				"to", to,
			)
		},
	}

	return &Loader{
		breaker:  gobreaker.NewCircuitBreaker(settings),
		client:   &http.Client{Timeout: envConfig.AssetTimeout},
		logger:   logger,
		config:   envConfig,
		eventBus: eventBus,
	}
}

// Execute runs one fetch through the circuit breaker. When the circuit
// is open the fetch fails immediately without touching the source.
func (l *Loader) Execute(ctx context.Context, operation Operation) ([]byte, error) {
	data, err := l.breaker.Execute(func() (interface{}, error) {
		return operation()
	})
	if err != nil {
		l.logger.LogWithContext(ctx, slog.LevelError, "asset fetch failed",
			"error", err,
			"state", l.breaker.State(),
		)
		return nil, fmt.Errorf("circuit breaker: %w", err)
	}

	return data.([]byte), nil
}

// ExecuteWithRetry runs a fetch with bounded retries and exponential
// backoff. Retries stop early when the circuit opens.
func (l *Loader) ExecuteWithRetry(ctx context.Context, operation Operation) ([]byte, error) {
	maxRetries := l.config.AssetMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	baseDelay := 1 * time.Second

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		data, err := l.Execute(ctx, operation)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if l.breaker.State() == gobreaker.StateOpen {
			l.logger.LogWithContext(ctx, slog.LevelWarn, "circuit breaker open, skipping retries",
				"attempt", attempt+1,
				"max_retries", maxRetries,
			)
			return nil, err
		}

		if attempt == maxRetries-1 {
			break
		}

		delay := time.Duration(1<<uint(attempt)) * baseDelay
		l.logger.LogWithContext(ctx, slog.LevelWarn, "asset fetch failed, retrying",
			"attempt", attempt+1,
			"max_retries", maxRetries,
			"delay", delay,
			"error", err,
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("max retries (%d) exceeded: %w", maxRetries, lastErr)
}

// LoadShipModel fetches the ship model from a file path or an http(s)
// URL and publishes the outcome. The returned bytes are the raw model
// payload; callers flip the ship's model-ready flag on success.
func (l *Loader) LoadShipModel(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		// No model configured: report ready immediately with an empty
		// payload so the ship uses its built-in placeholder mesh.
		l.publishLoaded(source, 0)
		return nil, nil
	}

	data, err := l.ExecuteWithRetry(ctx, func() ([]byte, error) {
		return l.fetch(ctx, source)
	})
	if err != nil {
		l.eventBus.Publish(event.NewAssetEvent(event.AssetLoadFailed, l, "ship-model", source, err))
		return nil, fmt.Errorf("loading ship model from %s: %w", source, err)
	}

	l.publishLoaded(source, len(data))
	return data, nil
}

// fetch reads one source, local or remote
func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.fetchRemote(ctx, source)
	}
	return os.ReadFile(source)
}

// fetchRemote downloads the asset over HTTP
func (l *Loader) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return data, nil
}

// publishLoaded announces a successful load
func (l *Loader) publishLoaded(source string, size int) {
	l.logger.Info(context.Background(), "asset loaded",
		"source", source,
		"bytes", size,
	)
	l.eventBus.Publish(event.NewAssetEvent(event.AssetLoaded, l, "ship-model", source, nil))
}

// State exposes the circuit breaker state for health reporting
func (l *Loader) State() gobreaker.State {
	return l.breaker.State()
}
