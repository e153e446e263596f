package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
)

// MockFeedStore is a mock implementation of the FeedStore interface for testing
type MockFeedStore struct {
	mu     sync.RWMutex
	feeds  map[string]*domain.Feed
	files  map[string]*domain.Feed
	saves  []string
	failOn map[string]error
}

// NewMockFeedStore creates a new mock feed store
func NewMockFeedStore() *MockFeedStore {
	return &MockFeedStore{
		feeds:  make(map[string]*domain.Feed),
		files:  make(map[string]*domain.Feed),
		failOn: make(map[string]error),
	}
}

// Save persists a feed in memory
func (m *MockFeedStore) Save(ctx context.Context, date string, feed *domain.Feed) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.failOn["save"]; ok {
		return err
	}
	m.feeds[date] = feed
	m.saves = append(m.saves, date)
	return nil
}

// Load retrieves a stored feed by date
func (m *MockFeedStore) Load(ctx context.Context, date string) (*domain.Feed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	feed, ok := m.feeds[date]
	if !ok {
		return nil, fmt.Errorf("no cached feed for %s", date)
	}
	return feed, nil
}

// LoadFile retrieves a feed registered with AddFile
func (m *MockFeedStore) LoadFile(ctx context.Context, path string) (*domain.Feed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	feed, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return feed, nil
}

// Exists checks if a feed is stored for the date
func (m *MockFeedStore) Exists(ctx context.Context, date string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.feeds[date]
	return ok
}

// List returns the stored dates in ascending order
func (m *MockFeedStore) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dates := make([]string, 0, len(m.feeds))
	for date := range m.feeds {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates, nil
}

// AddFile registers a feed readable through LoadFile
func (m *MockFeedStore) AddFile(path string, feed *domain.Feed) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = feed
}

// SetFailure makes the named operation ("save") return err
func (m *MockFeedStore) SetFailure(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn[op] = err
}

// GetSaves returns the dates passed to Save, in call order
func (m *MockFeedStore) GetSaves() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	saves := make([]string, len(m.saves))
	copy(saves, m.saves)
	return saves
}
