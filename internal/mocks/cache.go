package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/taskr-api/internal/cache"
)

// MockCache is an in-memory cache.Cache with injectable failures.
// TTLs are recorded but not enforced.
type MockCache struct {
	mu      sync.Mutex
	entries map[string][]byte

	// Errors returned instead of the default behavior when set
	GetErr    error
	SetErr    error
	DeleteErr error

	// Call tracking for verification
	GetCalls    int
	SetCalls    int
	DeleteCalls int
	LastTTL     time.Duration
}

var _ cache.Cache = (*MockCache)(nil)

// NewMockCache creates an empty mock cache.
func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

// Get implements cache.Cache
func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

// Set implements cache.Cache
func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	m.LastTTL = ttl

	if m.SetErr != nil {
		return m.SetErr
	}
	m.entries[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements cache.Cache
func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++

	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.entries, key)
	return nil
}

// Put stores value under key without counting a Set call.
func (m *MockCache) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

// Has reports whether key is present.
func (m *MockCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}
