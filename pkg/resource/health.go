// pkg/resource/health.go
package resource

import (
	"context"
	"fmt"
)

// HealthCheck exposes the manager's limits as a health probe. It
// satisfies the health.Check interface.
type HealthCheck struct {
	manager *Manager
}

// NewHealthCheck creates a health check over the resource manager
func NewHealthCheck(manager *Manager) *HealthCheck {
	return &HealthCheck{
		manager: manager,
	}
}

// Name returns the name of this health check.
func (h *HealthCheck) Name() string {
	return "resource"
}

// Check fails when memory is over the limit or the tracked goroutine
// count passes 80% of its budget.
func (h *HealthCheck) Check(ctx context.Context) error {
	stats := h.manager.Stats()

	if stats.MemoryUsageMB > stats.MaxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB",
			stats.MemoryUsageMB, stats.MaxMemoryMB)
	}

	threshold := int64(float64(stats.MaxGoroutines) * 0.8)
	if stats.GoroutineCount > threshold {
		return fmt.Errorf("goroutine count %d exceeds 80%% threshold (%d/%d)",
			stats.GoroutineCount, threshold, stats.MaxGoroutines)
	}

	return nil
}
