package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/ports"
	"github.com/kamal-hamza/neo-cli/pkg/workspace"
)

// FeedRepository caches feed documents as JSON files in the workspace
type FeedRepository struct {
	workspace *workspace.Workspace
	mu        sync.RWMutex
}

// NewFeedRepository creates a new file-based feed cache
func NewFeedRepository(ws *workspace.Workspace) *FeedRepository {
	return &FeedRepository{
		workspace: ws,
	}
}

// Ensure it implements the interface
var _ ports.FeedStore = (*FeedRepository)(nil)

// Save writes a feed to the cache. The file is written to a temporary name
// and renamed so watchers never observe a partial document.
func (r *FeedRepository) Save(ctx context.Context, date string, feed *domain.Feed) error {
	if feed == nil {
		return fmt.Errorf("cannot cache empty feed for %s", date)
	}

	data, err := json.MarshalIndent(feed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.workspace.CachePath, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := r.workspace.FeedCachePath(date)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move cache file into place: %w", err)
	}

	return nil
}

// Load reads the cached feed for a date
func (r *FeedRepository) Load(ctx context.Context, date string) (*domain.Feed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path := r.workspace.FeedCachePath(date)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no cached feed for %s", date)
	}
	return readFeed(path)
}

// LoadFile reads a feed document from any path
func (r *FeedRepository) LoadFile(ctx context.Context, path string) (*domain.Feed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return readFeed(path)
}

// Exists checks if a feed is cached for the date
func (r *FeedRepository) Exists(ctx context.Context, date string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, err := os.Stat(r.workspace.FeedCachePath(date))
	return err == nil
}

// List returns the cached dates in ascending order
func (r *FeedRepository) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.workspace.CachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	dates := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if date, ok := workspace.DateFromCacheFile(entry.Name()); ok {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// Delete removes the cached feed for a date
func (r *FeedRepository) Delete(ctx context.Context, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.workspace.FeedCachePath(date)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readFeed(path string) (*domain.Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}
	feed, err := domain.ParseFeed(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return feed, nil
}
