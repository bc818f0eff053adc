// Package cache stores rendered phrase documents with their entity tags.
package cache

import (
	"context"
	"sync"
)

// Entry is a cached document body and its ETag.
type Entry struct {
	Body []byte
	ETag string
}

// Cache is implemented by Memory and Redis.
type Cache interface {
	Get(ctx context.Context, name string) (Entry, bool, error)
	Set(ctx context.Context, name string, e Entry) error
	Purge(ctx context.Context) error
}

// Memory is an in-process Cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

var _ Cache = (*Memory)(nil)

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) Get(_ context.Context, name string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[name]
	return e, ok, nil
}

func (m *Memory) Set(_ context.Context, name string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = e
	return nil
}

func (m *Memory) Purge(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]Entry)
	return nil
}
