package asset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/event"
)

func testEnvConfig() *config.EnvironmentConfig {
	return &config.EnvironmentConfig{
		TickRate:                   60,
		HealthPort:                 8080,
		MetricsPort:                9090,
		AssetTimeout:               2 * time.Second,
		AssetMaxRetries:            3,
		BreakerMaxRequests:         3,
		BreakerInterval:            60 * time.Second,
		BreakerTimeout:             100 * time.Millisecond,
		BreakerMaxConsecutiveFails: 3,
		MaxMemoryMB:                500,
		MaxGoroutines:              100,
		ShutdownTimeout:            30 * time.Second,
		ResourceCheckInterval:      10 * time.Second,
	}
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader(testEnvConfig(), event.NewEventBus())

	if loader.breaker == nil {
		t.Error("circuit breaker not initialized")
	}
	if loader.State() != gobreaker.StateClosed {
		t.Errorf("initial breaker state = %v, want closed", loader.State())
	}
}

func TestExecuteSuccess(t *testing.T) {
	loader := NewLoader(testEnvConfig(), event.NewEventBus())

	data, err := loader.Execute(context.Background(), func() ([]byte, error) {
		return []byte("payload"), nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("got %q, want %q", data, "payload")
	}
}

func TestExecuteFailure(t *testing.T) {
	loader := NewLoader(testEnvConfig(), event.NewEventBus())

	_, err := loader.Execute(context.Background(), func() ([]byte, error) {
		return nil, errors.New("source unavailable")
	})
	if err == nil {
		t.Fatal("expected error from failing operation")
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	loader := NewLoader(testEnvConfig(), event.NewEventBus())

	for i := 0; i < 3; i++ {
		loader.Execute(context.Background(), func() ([]byte, error) {
			return nil, errors.New("source unavailable")
		})
	}

	if loader.State() != gobreaker.StateOpen {
		t.Errorf("breaker state after 3 failures = %v, want open", loader.State())
	}

	// While open, operations are rejected without running.
	ran := false
	_, err := loader.Execute(context.Background(), func() ([]byte, error) {
		ran = true
		return nil, nil
	})
	if err == nil {
		t.Error("expected rejection while breaker open")
	}
	if ran {
		t.Error("operation ran while breaker was open")
	}
}

func TestExecuteWithRetryEventualSuccess(t *testing.T) {
	cfg := testEnvConfig()
	loader := NewLoader(cfg, event.NewEventBus())

	var attempts atomic.Int32
	start := time.Now()

	// Patch the retry base delay indirectly: operations fail once, then
	// succeed, so only one 1s backoff elapses.
	data, err := loader.ExecuteWithRetry(context.Background(), func() ([]byte, error) {
		if attempts.Add(1) == 1 {
			return nil, errors.New("transient")
		}
		return []byte("model"), nil
	})
	if err != nil {
		t.Fatalf("ExecuteWithRetry failed: %v", err)
	}
	if string(data) != "model" {
		t.Errorf("got %q, want %q", data, "model")
	}
	if attempts.Load() != 2 {
		t.Errorf("attempts = %d, want 2", attempts.Load())
	}
	if time.Since(start) < time.Second {
		t.Error("expected backoff before the retry")
	}
}

func TestExecuteWithRetryExhausted(t *testing.T) {
	cfg := testEnvConfig()
	cfg.AssetMaxRetries = 2
	cfg.BreakerMaxConsecutiveFails = 10 // keep the breaker closed
	loader := NewLoader(cfg, event.NewEventBus())

	var attempts atomic.Int32
	_, err := loader.ExecuteWithRetry(context.Background(), func() ([]byte, error) {
		attempts.Add(1)
		return nil, errors.New("permanent")
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts.Load() != 2 {
		t.Errorf("attempts = %d, want 2", attempts.Load())
	}
}

func TestExecuteWithRetryRespectsContext(t *testing.T) {
	cfg := testEnvConfig()
	cfg.BreakerMaxConsecutiveFails = 10
	loader := NewLoader(cfg, event.NewEventBus())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := loader.ExecuteWithRetry(ctx, func() ([]byte, error) {
		return nil, errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoadShipModelFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ship.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0"), 0o644); err != nil {
		t.Fatal(err)
	}

	bus := event.NewEventBus()
	var loaded atomic.Bool
	bus.Subscribe(event.AssetLoaded, func(e event.Event) {
		loaded.Store(true)
	})

	loader := NewLoader(testEnvConfig(), bus)
	data, err := loader.LoadShipModel(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadShipModel failed: %v", err)
	}
	if string(data) != "v 0 0 0" {
		t.Errorf("got %q, want file contents", data)
	}
	if !loaded.Load() {
		t.Error("AssetLoaded event not published")
	}
}

func TestLoadShipModelFromHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("remote model"))
	}))
	defer server.Close()

	loader := NewLoader(testEnvConfig(), event.NewEventBus())
	data, err := loader.LoadShipModel(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("LoadShipModel failed: %v", err)
	}
	if string(data) != "remote model" {
		t.Errorf("got %q, want %q", data, "remote model")
	}
}

func TestLoadShipModelHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cfg := testEnvConfig()
	cfg.AssetMaxRetries = 1

	bus := event.NewEventBus()
	var failed atomic.Bool
	bus.Subscribe(event.AssetLoadFailed, func(e event.Event) {
		failed.Store(true)
	})

	loader := NewLoader(cfg, bus)
	if _, err := loader.LoadShipModel(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !failed.Load() {
		t.Error("AssetLoadFailed event not published")
	}
}

func TestLoadShipModelEmptySource(t *testing.T) {
	bus := event.NewEventBus()
	var loaded atomic.Bool
	bus.Subscribe(event.AssetLoaded, func(e event.Event) {
		loaded.Store(true)
	})

	loader := NewLoader(testEnvConfig(), bus)
	data, err := loader.LoadShipModel(context.Background(), "")
	if err != nil {
		t.Fatalf("LoadShipModel failed: %v", err)
	}
	if data != nil {
		t.Error("expected nil payload for placeholder model")
	}
	if !loaded.Load() {
		t.Error("empty source should still report ready")
	}
}
