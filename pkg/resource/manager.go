// pkg/resource/manager.go
package resource

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/logging"
)

// Manager watches process resources for long-running headless
// deployments: memory against the configured ceiling, plus a tracked
// goroutine budget so background work (asset fetches, HTTP servers)
// cannot pile up unbounded.
type Manager struct {
	maxMemoryMB     int64
	maxGoroutines   int64
	shutdownTimeout time.Duration
	checkInterval   time.Duration

	goroutineCount int64
	memoryUsageMB  int64

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.RWMutex
	running bool
	logger  *logging.Logger

	lastCheck time.Time
}

// NewManager creates a resource manager from environment settings
func NewManager(envConfig *config.EnvironmentConfig) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		maxMemoryMB:     envConfig.MaxMemoryMB,
		maxGoroutines:   int64(envConfig.MaxGoroutines),
		shutdownTimeout: envConfig.ShutdownTimeout,
		checkInterval:   envConfig.ResourceCheckInterval,
		ctx:             ctx,
		cancel:          cancel,
		done:            make(chan struct{}),
		logger:          logging.NewLogger(),
		lastCheck:       time.Now(),
	}
}

// Start begins the periodic resource checks
func (m *Manager) Start() error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("resource manager already running")
	}
	m.running = true
	m.mu.Unlock()

	go m.watchLoop()

	m.logger.Info(m.ctx, "resource manager started",
		"max_memory_mb", m.maxMemoryMB,
		"max_goroutines", m.maxGoroutines,
		"check_interval", m.checkInterval,
	)
	return nil
}

// Go starts a tracked goroutine, refusing when the budget is spent.
// The function receives the manager's context so it stops on shutdown.
func (m *Manager) Go(name string, fn func(context.Context)) error {
	current := atomic.LoadInt64(&m.goroutineCount)
	if current >= m.maxGoroutines {
		m.logger.Warn(m.ctx, "goroutine budget exhausted",
			"current", current,
			"limit", m.maxGoroutines,
			"name", name,
		)
		return fmt.Errorf("goroutine limit exceeded: %d/%d", current, m.maxGoroutines)
	}

	atomic.AddInt64(&m.goroutineCount, 1)

	go func() {
		defer atomic.AddInt64(&m.goroutineCount, -1)
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error(m.ctx, "tracked goroutine panicked",
					fmt.Errorf("panic: %v", r),
					"name", name,
				)
			}
		}()
		fn(m.ctx)
	}()

	return nil
}

// CheckMemoryUsage samples the heap and compares it to the limit
func (m *Manager) CheckMemoryUsage() error {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	currentMB := int64(stats.Alloc / 1024 / 1024)
	atomic.StoreInt64(&m.memoryUsageMB, currentMB)

	m.mu.Lock()
	m.lastCheck = time.Now()
	m.mu.Unlock()

	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}

// GoroutineCount returns the number of tracked goroutines
func (m *Manager) GoroutineCount() int64 {
	return atomic.LoadInt64(&m.goroutineCount)
}

// MemoryUsageMB returns the last sampled heap size in MB
func (m *Manager) MemoryUsageMB() int64 {
	return atomic.LoadInt64(&m.memoryUsageMB)
}

// Stats reports current usage against the configured limits
type Stats struct {
	GoroutineCount int64     `json:"goroutine_count"`
	MaxGoroutines  int64     `json:"max_goroutines"`
	MemoryUsageMB  int64     `json:"memory_usage_mb"`
	MaxMemoryMB    int64     `json:"max_memory_mb"`
	LastCheck      time.Time `json:"last_check"`
}

// Stats returns a snapshot of resource usage
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	lastCheck := m.lastCheck
	m.mu.RUnlock()

	return Stats{
		GoroutineCount: m.GoroutineCount(),
		MaxGoroutines:  m.maxGoroutines,
		MemoryUsageMB:  m.MemoryUsageMB(),
		MaxMemoryMB:    m.maxMemoryMB,
		LastCheck:      lastCheck,
	}
}

// Shutdown stops the watch loop and waits for tracked goroutines
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	m.mu.Unlock()

	m.logger.Info(ctx, "shutting down resource manager")
	m.cancel()

	shutdownCtx, cancel := context.WithTimeout(ctx, m.shutdownTimeout)
	defer cancel()

	select {
	case <-m.done:
	case <-shutdownCtx.Done():
		m.logger.Warn(ctx, "watch loop did not stop before the deadline")
	}

	return m.waitForGoroutines(shutdownCtx)
}

// waitForGoroutines blocks until tracked goroutines drain or timeout
func (m *Manager) waitForGoroutines(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		count := m.GoroutineCount()
		if count == 0 {
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			remaining := m.GoroutineCount()
			return fmt.Errorf("shutdown timeout: %d goroutines still running", remaining)
		}
	}
}

// watchLoop runs the periodic checks until shutdown
func (m *Manager) watchLoop() {
	defer close(m.done)

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.CheckMemoryUsage(); err != nil {
				m.logger.Error(m.ctx, "memory limit exceeded", err,
					"current_mb", m.MemoryUsageMB(),
					"limit_mb", m.maxMemoryMB,
				)
			}
			m.logger.Debug(m.ctx, "resource check",
				"goroutines", m.GoroutineCount(),
				"memory_mb", m.MemoryUsageMB(),
			)
		case <-m.ctx.Done():
			return
		}
	}
}
