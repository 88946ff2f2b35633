package health

import (
	"context"
	"sync"
	"time"

	"github.com/benedict-erwin/manufacture-online/pkg/system"
	"github.com/benedict-erwin/manufacture-online/pkg/utils"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
)

// Probe pings one dependency
type Probe func(ctx context.Context) error

type (
	HealthStatus struct {
		Status    string              `json:"status"`
		Timestamp time.Time           `json:"timestamp"`
		Version   string              `json:"version"`
		Uptime    string              `json:"uptime"`
		Runtime   system.RuntimeStats `json:"runtime"`
	}

	ServiceHealth struct {
		Status       string    `json:"status"`
		ResponseTime string    `json:"response_time"`
		LastCheck    time.Time `json:"last_check"`
		Error        string    `json:"error,omitempty"`
	}

	ReadinessStatus struct {
		Status    string                   `json:"status"`
		Timestamp time.Time                `json:"timestamp"`
		Services  map[string]ServiceHealth `json:"services"`
	}
)

// Checker reports liveness and the readiness of registered dependencies.
// Readiness results are cached for cacheFor.
type Checker struct {
	version  string
	started  time.Time
	probes   map[string]Probe
	cacheFor time.Duration

	mu       sync.Mutex
	cached   *ReadinessStatus
	cachedAt time.Time
}

// NewChecker returns a Checker with a 10s readiness cache
func NewChecker(version string) *Checker {
	return &Checker{
		version:  version,
		started:  time.Now(),
		probes:   make(map[string]Probe),
		cacheFor: 10 * time.Second,
	}
}

// Register adds a dependency probe; a nil probe reports the service as disabled
func (c *Checker) Register(name string, probe Probe) *Checker {
	c.probes[name] = probe
	return c
}

// Live reports process liveness without touching dependencies
func (c *Checker) Live() HealthStatus {
	return HealthStatus{
		Status:    StatusHealthy,
		Timestamp: utils.Now(),
		Version:   c.version,
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		Runtime:   system.ReadRuntimeStats(),
	}
}

// Ready probes every registered dependency. Probes run without holding the
// cache lock.
func (c *Checker) Ready(ctx context.Context) ReadinessStatus {
	c.mu.Lock()
	if c.cached != nil && time.Since(c.cachedAt) < c.cacheFor {
		status := *c.cached
		c.mu.Unlock()
		return status
	}
	c.mu.Unlock()

	status := &ReadinessStatus{
		Status:    StatusReady,
		Timestamp: utils.Now(),
		Services:  make(map[string]ServiceHealth, len(c.probes)),
	}
	for name, probe := range c.probes {
		sh := check(ctx, probe)
		if sh.Status == StatusUnhealthy {
			status.Status = StatusNotReady
		}
		status.Services[name] = sh
	}

	c.mu.Lock()
	c.cached = status
	c.cachedAt = time.Now()
	c.mu.Unlock()
	return *status
}

func check(ctx context.Context, probe Probe) ServiceHealth {
	if probe == nil {
		return ServiceHealth{Status: StatusDisabled, ResponseTime: "0s", LastCheck: utils.Now()}
	}

	start := time.Now()
	err := probe(ctx)
	sh := ServiceHealth{
		Status:       StatusHealthy,
		ResponseTime: time.Since(start).String(),
		LastCheck:    utils.Now(),
	}
	if err != nil {
		sh.Status = StatusUnhealthy
		sh.Error = err.Error()
	}
	return sh
}
