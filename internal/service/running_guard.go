package service

import (
	"context"
	"sync"
)

// ExportedRunGuard is an exported alias so _test packages can test the guard.
type ExportedRunGuard = runGuard

// runGuard keeps a single toolchain run per project and lets shutdown wait
// for runs in flight. Once Wait has been called no new run starts.
type runGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
	closing bool
	wg      sync.WaitGroup
}

// TryAcquire marks key as running. It returns false if key already is or
// the guard is closing.
func (g *runGuard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closing {
		return false
	}
	if g.running == nil {
		g.running = make(map[string]struct{})
	}
	if _, ok := g.running[key]; ok {
		return false
	}
	g.running[key] = struct{}{}
	g.wg.Add(1)
	return true
}

// Release ends a run started by a successful TryAcquire.
func (g *runGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, key)
	g.wg.Done()
}

// Busy reports whether key is running.
func (g *runGuard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.running[key]
	return ok
}

// Closing reports whether Wait has been called.
func (g *runGuard) Closing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closing
}

// Wait stops new runs, then blocks until every run finishes or ctx is done.
func (g *runGuard) Wait(ctx context.Context) {
	g.mu.Lock()
	g.closing = true
	g.mu.Unlock()

	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
