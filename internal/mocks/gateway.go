package mocks

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/phrazzld/flashdeck/internal/store"
)

// MockGateway implements store.Gateway for testing
type MockGateway struct {
	// Function fields for customizable behavior
	LoadFn    func(ctx context.Context, key string) ([]byte, error)
	SaveFn    func(ctx context.Context, key string, payload []byte) error
	SaveAllFn func(ctx context.Context, records ...store.Record) error

	// Data for default implementation
	Records map[string][]byte
	// Saves counts successful default writes per key.
	Saves map[string]int
	// SaveError, when set, fails every default write.
	SaveError error

	mu sync.Mutex
}

// Ensure MockGateway implements store.Gateway interface
var _ store.Gateway = (*MockGateway)(nil)

// NewMockGateway creates a new mock gateway with initialized defaults
func NewMockGateway() *MockGateway {
	return &MockGateway{
		Records: make(map[string][]byte),
		Saves:   make(map[string]int),
	}
}

// Seed stores payload under key without counting it as a save.
func (m *MockGateway) Seed(key string, payload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records[key] = []byte(payload)
}

// Payload returns the stored payload for key as a string.
func (m *MockGateway) Payload(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Records[key]
	return string(p), ok
}

// SaveCount returns how many times key was written.
func (m *MockGateway) SaveCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Saves[key]
}

// Load implements the store.Gateway interface
func (m *MockGateway) Load(ctx context.Context, key string) ([]byte, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Records[key]
	if !ok {
		return nil, fmt.Errorf("mock load %q: %w", key, store.ErrNotFound)
	}
	return slices.Clone(p), nil
}

// Save implements the store.Gateway interface
func (m *MockGateway) Save(ctx context.Context, key string, payload []byte) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, key, payload)
	}
	return m.SaveAll(ctx, store.Record{Key: key, Payload: payload})
}

// SaveAll implements the store.Gateway interface
func (m *MockGateway) SaveAll(ctx context.Context, records ...store.Record) error {
	if m.SaveAllFn != nil {
		return m.SaveAllFn(ctx, records...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	for _, r := range records {
		if r.Key == "" {
			return store.ErrEmptyKey
		}
	}
	for _, r := range records {
		m.Records[r.Key] = slices.Clone(r.Payload)
		m.Saves[r.Key]++
	}
	return nil
}
