// Package health provides liveness and readiness probes for headless
// deployments of the simulation.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Check is one component's health probe
type Check interface {
	// Name returns the unique name of this health check
	Name() string
	// Check returns an error when the component is unhealthy
	Check(ctx context.Context) error
}

// Status is the aggregated health report
type Status struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth is one component's entry in the report
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checker aggregates component checks behind HTTP probe handlers
type Checker struct {
	checks map[string]Check
	mu     sync.RWMutex
}

// NewChecker creates an empty health checker
func NewChecker() *Checker {
	return &Checker{
		checks: make(map[string]Check),
	}
}

// AddCheck registers a check, replacing any existing one by that name
func (hc *Checker) AddCheck(check Check) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a check by name
func (hc *Checker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth runs every registered check. The overall status is
// "healthy" only when all pass.
func (hc *Checker) CheckHealth(ctx context.Context) Status {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := Status{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: "healthy",
			}
		}
	}

	return status
}

// LivenessHandler answers 200 whenever the process can serve requests
func (hc *Checker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// ReadinessHandler runs all checks, answering 503 when any fails
func (hc *Checker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := hc.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")
	if health.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}

// SimulationCheck reports unhealthy when the tick loop stalls
type SimulationCheck struct {
	running      func() bool
	lastTickTime func() time.Time
	maxTickAge   time.Duration
}

// NewSimulationCheck creates a tick-freshness check. maxTickAge bounds
// how stale the last tick may be before the loop counts as stalled.
func NewSimulationCheck(running func() bool, lastTickTime func() time.Time, maxTickAge time.Duration) *SimulationCheck {
	return &SimulationCheck{
		running:      running,
		lastTickTime: lastTickTime,
		maxTickAge:   maxTickAge,
	}
}

// Name returns the name of this health check.
func (s *SimulationCheck) Name() string {
	return "simulation"
}

// Check verifies the loop is running and ticking
func (s *SimulationCheck) Check(ctx context.Context) error {
	if !s.running() {
		return fmt.Errorf("simulation is not running")
	}

	age := time.Since(s.lastTickTime())
	if age > s.maxTickAge {
		return fmt.Errorf("last tick %v ago exceeds %v", age.Round(time.Millisecond), s.maxTickAge)
	}
	return nil
}

// MemoryCheck reports unhealthy past a heap ceiling
type MemoryCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryCheck creates a heap usage check
func NewMemoryCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryCheck {
	return &MemoryCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns the name of this health check.
func (m *MemoryCheck) Name() string {
	return "memory"
}

// Check verifies memory usage is under the limit
func (m *MemoryCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}
