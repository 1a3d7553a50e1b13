package appctx

import "sync"

// Guarded is a value behind its own RWMutex. Access goes through scoped
// callbacks so a lock is always released when the callback returns, panics
// included.
type Guarded[T any] struct {
	mu sync.RWMutex
	v  T
}

// NewGuarded wraps v.
func NewGuarded[T any](v T) *Guarded[T] {
	return &Guarded[T]{v: v}
}

// Read runs fn with shared access. Any number of readers may run at once.
func (g *Guarded[T]) Read(fn func(T) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return fn(g.v)
}

// Write runs fn with exclusive access; fn may replace the value through p.
func (g *Guarded[T]) Write(fn func(p *T) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(&g.v)
}

// Load returns a copy of the current value.
func (g *Guarded[T]) Load() T {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.v
}
