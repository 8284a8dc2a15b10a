// Package lifecycle coordinates startup hooks, shutdown hooks and the
// readiness of the long-lived subsystems behind the service.
package lifecycle

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"sync/atomic"
	"time"
)

// StartupCheck is the readiness entry reported for the startup hooks.
const StartupCheck = "startup"

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// ReadyFunc adapts a function to ReadinessChecker.
type ReadyFunc func() bool

// Ready calls f.
func (f ReadyFunc) Ready() bool { return f() }

// Coordinator runs startup hooks, holds shutdown hooks until the context is
// cancelled, and aggregates subsystem readiness.
type Coordinator struct {
	ctx      context.Context
	cancel   context.CancelFunc
	startup  sync.WaitGroup
	shutdown sync.WaitGroup
	started  atomic.Bool

	mu     sync.RWMutex
	checks map[string]ReadinessChecker
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
		checks: make(map[string]ReadinessChecker),
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn concurrently as part of startup.
func (c *Coordinator) OnStartup(fn func()) {
	c.startup.Go(fn)
}

// OnShutdown runs fn concurrently. Hooks block on <-c.Context().Done()
// before cleaning up.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdown.Go(fn)
}

// Track registers a named subsystem whose readiness gates Ready. A later
// registration under the same name replaces the earlier one.
func (c *Coordinator) Track(name string, check ReadinessChecker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Ready reports whether startup finished and every tracked subsystem is ready.
func (c *Coordinator) Ready() bool {
	if !c.started.Load() {
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, check := range c.checks {
		if !check.Ready() {
			return false
		}
	}
	return true
}

// Readiness returns the state of startup and of each tracked subsystem.
func (c *Coordinator) Readiness() map[string]bool {
	c.mu.RLock()
	checks := maps.Clone(c.checks)
	c.mu.RUnlock()

	status := map[string]bool{StartupCheck: c.started.Load()}
	for name, check := range checks {
		status[name] = check.Ready()
	}
	return status
}

// WaitForStartup blocks until every startup hook has returned.
func (c *Coordinator) WaitForStartup() {
	c.startup.Wait()
	c.started.Store(true)
}

// Shutdown cancels the context and waits up to timeout for shutdown hooks.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdown.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
