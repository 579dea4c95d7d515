package settings

import (
	"context"
	"errors"
	"sync"
)

// Store is a namespaced string key/value store. Get reports found=false
// for absent keys; absence is never an error.
type Store interface {
	Get(ctx context.Context, group, key string) (value string, found bool, err error)
	Set(ctx context.Context, group, key, value string) error
	Unset(ctx context.Context, group, key string) error
}

// MemoryStore is an in-process Store, used when no redis is configured
// and in tests
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string]map[string]string
	getError error
	setError error

	// Track calls for testing
	SetCalls []SetCall
}

// SetCall records a single write
type SetCall struct {
	Group string
	Key   string
	Value string
}

// Ensure MemoryStore implements Store interface
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   make(map[string]map[string]string),
		SetCalls: make([]SetCall, 0),
	}
}

func (m *MemoryStore) Get(ctx context.Context, group, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return "", false, m.getError
	}
	v, ok := m.values[group][key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, group, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, SetCall{Group: group, Key: key, Value: value})
	if m.setError != nil {
		return m.setError
	}
	if m.values[group] == nil {
		m.values[group] = make(map[string]string)
	}
	m.values[group][key] = value
	return nil
}

func (m *MemoryStore) Unset(ctx context.Context, group, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setError != nil {
		return m.setError
	}
	delete(m.values[group], key)
	return nil
}

// All returns a copy of every key in a group
func (m *MemoryStore) All(ctx context.Context, group string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	out := make(map[string]string, len(m.values[group]))
	for k, v := range m.values[group] {
		out[k] = v
	}
	return out, nil
}

// SetGetError makes every Get fail with err (nil restores normal reads)
func (m *MemoryStore) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

// SetSetError makes every Set and Unset fail with err
func (m *MemoryStore) SetSetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setError = err
}

// Writes returns the recorded writes for one key, oldest first
func (m *MemoryStore) Writes(group, key string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for _, c := range m.SetCalls {
		if c.Group == group && c.Key == key {
			out = append(out, c.Value)
		}
	}
	return out
}

// Reset clears stored values and call tracking
func (m *MemoryStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]map[string]string)
	m.SetCalls = make([]SetCall, 0)
	m.getError = nil
	m.setError = nil
}

// ErrStoreUnavailable is a convenience error for simulating outages
var ErrStoreUnavailable = errors.New("settings store unavailable")
