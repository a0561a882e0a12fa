package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"collection-connector/internal/infra/logger"
	"collection-connector/internal/infra/store"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Setenv("LOG_LEVEL", "error")
	return logger.NewLogger(context.Background(), false)
}

// fakeSessionStore is an in-memory SessionStore with atomic GetDel, the
// primitive the debounce race relies on.
type fakeSessionStore struct {
	mu        sync.Mutex
	data      map[string]string
	ttls      map[string]time.Duration
	refreshed map[string]time.Duration
	err       error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		data:      map[string]string{},
		ttls:      map[string]time.Duration{},
		refreshed: map[string]time.Duration{},
	}
}

func (f *fakeSessionStore) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	value, ok := f.data[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return value, nil
}

func (f *fakeSessionStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.data[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeSessionStore) GetDel(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	value, ok := f.data[key]
	if !ok {
		return "", store.ErrNotFound
	}
	delete(f.data, key)
	return value, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.data, key)
	return nil
}

func (f *fakeSessionStore) RefreshTTL(_ context.Context, key string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.refreshed[key] = ttl
	return nil
}
