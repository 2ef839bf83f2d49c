package health

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/angeloszaimis/chatbot-api/internal/metrics"
	"github.com/angeloszaimis/chatbot-api/internal/store"
)

// Probe is one named health check.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// Checker runs the probes on an interval, logging state transitions and
// feeding resource status into the metrics collector.
type Checker struct {
	mu        sync.RWMutex
	status    map[string]bool
	probes    []Probe
	interval  time.Duration
	logger    *slog.Logger
	collector *metrics.Collector
}

func New(interval time.Duration, logger *slog.Logger, collector *metrics.Collector, probes ...Probe) *Checker {
	return &Checker{
		status:    make(map[string]bool, len(probes)),
		probes:    probes,
		interval:  interval,
		logger:    logger,
		collector: collector,
	}
}

func (c *Checker) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Checker) run(ctx context.Context) {
	c.RunChecks(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Health checker stopped")
			return

		case <-ticker.C:
			c.RunChecks(ctx)
		}
	}
}

// RunChecks executes every probe once.
func (c *Checker) RunChecks(ctx context.Context) {
	for _, probe := range c.probes {
		err := probe.Check(ctx)
		healthy := err == nil

		changed := c.set(probe.Name, healthy)
		if changed {
			if healthy {
				c.logger.Info("Resource is back up",
					slog.String("resource", probe.Name))
			} else {
				c.logger.Warn("Resource is down",
					slog.String("resource", probe.Name),
					slog.Any("err", err))
			}
		}

		c.collector.Emit(metrics.Event{
			Type:      metrics.EventResourceStatus,
			Timestamp: time.Now(),
			Resource:  probe.Name,
			Healthy:   healthy,
		})
	}
}

func (c *Checker) set(name string, healthy bool) (changed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, known := c.status[name]; known && current == healthy {
		return false
	}

	c.status[name] = healthy
	return true
}

// Snapshot returns a copy of the current per-resource status.
func (c *Checker) Snapshot() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := make(map[string]bool, len(c.status))
	for name, healthy := range c.status {
		snap[name] = healthy
	}
	return snap
}

// Healthy reports whether every probe passed on its last run.
func (c *Checker) Healthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, healthy := range c.status {
		if !healthy {
			return false
		}
	}
	return true
}

// DataFileProbe checks that the chatbot data file exists. The data endpoint
// itself keeps answering 404 while the file is absent; this only surfaces
// the condition operationally.
func DataFileProbe(path string) Probe {
	return Probe{
		Name: "data_file",
		Check: func(context.Context) error {
			_, err := os.Stat(path)
			return err
		},
	}
}

// StoreProbe checks the FAQ database connection.
func StoreProbe(s *store.Store) Probe {
	return Probe{
		Name: "faq_store",
		Check: func(ctx context.Context) error {
			return s.Ping(ctx)
		},
	}
}
