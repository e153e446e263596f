package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/ports"
)

// Feed sources reported in FeedResponse
const (
	SourceAPI   = "api"
	SourceCache = "cache"
	SourceFile  = "file"
)

const dateLayout = "2006-01-02"

// maxRangeDays caps the number of days FetchRange requests
const maxRangeDays = 366

// FeedService resolves feeds from a local file, the cache or the remote API
type FeedService struct {
	source ports.FeedSource
	store  ports.FeedStore
	logger *zap.Logger
}

// NewFeedService creates a new feed service. A nil source makes the service
// cache-only.
func NewFeedService(source ports.FeedSource, store ports.FeedStore, logger *zap.Logger) *FeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedService{
		source: source,
		store:  store,
		logger: logger,
	}
}

// FeedRequest represents a request for the feed of a date range
type FeedRequest struct {
	Date        string // YYYY-MM-DD
	EndDate     string // optional, defaults to Date
	File        string // read this file instead of cache or API
	Offline     bool   // never contact the API
	PreferCache bool   // use a cached feed when present
}

// FeedResponse represents a resolved feed
type FeedResponse struct {
	Feed    *domain.Feed
	Source  string
	Warning string
}

// Execute resolves a feed. File takes priority, then the cache for offline
// or cache-preferring requests, then the API. When the API fails the cache
// is used as a fallback and the failure is reported as a warning.
func (s *FeedService) Execute(ctx context.Context, req FeedRequest) (*FeedResponse, error) {
	if req.File != "" {
		feed, err := s.store.LoadFile(ctx, req.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load feed file: %w", err)
		}
		return &FeedResponse{Feed: feed, Source: SourceFile}, nil
	}

	dates, err := ExpandDates(req.Date, req.EndDate)
	if err != nil {
		return nil, err
	}

	if req.Offline || s.source == nil {
		feed, err := s.loadCached(ctx, dates)
		if err != nil {
			return nil, err
		}
		return &FeedResponse{Feed: feed, Source: SourceCache}, nil
	}

	if req.PreferCache && s.cachedAll(ctx, dates) {
		if feed, err := s.loadCached(ctx, dates); err == nil {
			s.logger.Debug("feed served from cache", zap.Strings("dates", dates))
			return &FeedResponse{Feed: feed, Source: SourceCache}, nil
		}
	}

	feed, fetchErr := s.source.FetchFeed(ctx, dates[0], dates[len(dates)-1])
	if fetchErr == nil {
		resp := &FeedResponse{Feed: feed, Source: SourceAPI}
		if err := s.saveByDate(ctx, feed); err != nil {
			s.logger.Warn("failed to cache feed", zap.Error(err))
			resp.Warning = fmt.Sprintf("feed not cached: %v", err)
		}
		return resp, nil
	}
	if errors.Is(fetchErr, context.Canceled) {
		return nil, fetchErr
	}

	s.logger.Warn("feed fetch failed, trying cache", zap.Strings("dates", dates), zap.Error(fetchErr))
	cached, cacheErr := s.loadCached(ctx, dates)
	if cacheErr != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w (cache: %v)", fetchErr, cacheErr)
	}

	return &FeedResponse{
		Feed:    cached,
		Source:  SourceCache,
		Warning: fmt.Sprintf("API unavailable (%v), using cached feed", fetchErr),
	}, nil
}

// cachedAll reports whether every date has a stored feed
func (s *FeedService) cachedAll(ctx context.Context, dates []string) bool {
	for _, date := range dates {
		if !s.store.Exists(ctx, date) {
			return false
		}
	}
	return true
}

// loadCached merges the cached feeds of every date; any missing date is an error
func (s *FeedService) loadCached(ctx context.Context, dates []string) (*domain.Feed, error) {
	merged := &domain.Feed{NearEarthObjects: make(map[string][]json.RawMessage)}
	for _, date := range dates {
		feed, err := s.store.Load(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("no cached feed for %s: %w", date, err)
		}
		merged.Merge(feed)
	}
	return merged, nil
}

// saveByDate caches a multi-day feed as one document per date
func (s *FeedService) saveByDate(ctx context.Context, feed *domain.Feed) error {
	var errs []error
	for _, date := range feed.Dates() {
		records := feed.Records(date)
		day := &domain.Feed{
			ElementCount:     len(records),
			NearEarthObjects: map[string][]json.RawMessage{date: records},
		}
		if err := s.store.Save(ctx, date, day); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", date, err))
		}
	}
	return errors.Join(errs...)
}

// FetchRangeRequest represents a request to fetch many days individually
type FetchRangeRequest struct {
	StartDate  string
	EndDate    string
	MaxWorkers int // Number of concurrent workers
}

// FetchResult is the outcome for one day of a range
type FetchResult struct {
	Date    string
	Count   int
	Source  string
	Success bool
	Error   error
}

// FetchRangeResponse represents the response from fetching a range
type FetchRangeResponse struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []FetchResult
}

// FetchProgress represents the progress of a range fetch
type FetchProgress struct {
	Current int
	Total   int
	Result  FetchResult
}

// FetchRange fetches every day of the range concurrently and caches each one
func (s *FeedService) FetchRange(ctx context.Context, req FetchRangeRequest) (*FetchRangeResponse, error) {
	return s.FetchRangeWithProgress(ctx, req, nil)
}

// FetchRangeWithProgress is FetchRange reporting each finished day on
// progressChan, which is closed on return when non-nil
func (s *FeedService) FetchRangeWithProgress(ctx context.Context, req FetchRangeRequest, progressChan chan<- FetchProgress) (*FetchRangeResponse, error) {
	if progressChan != nil {
		defer close(progressChan)
	}

	dates, err := expandDateRange(req.StartDate, req.EndDate, maxRangeDays)
	if err != nil {
		return nil, err
	}

	// Default to 4 workers if not specified
	maxWorkers := req.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	jobs := make(chan string, len(dates))
	results := make(chan FetchResult, len(dates))

	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, jobs, results)
		}()
	}

	for _, date := range dates {
		jobs <- date
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	response := &FetchRangeResponse{Total: len(dates)}
	current := 0
	for result := range results {
		current++
		response.Results = append(response.Results, result)
		if result.Success {
			response.Succeeded++
		} else {
			response.Failed++
		}
		if progressChan != nil {
			progressChan <- FetchProgress{Current: current, Total: len(dates), Result: result}
		}
	}

	sort.Slice(response.Results, func(i, j int) bool {
		return response.Results[i].Date < response.Results[j].Date
	})

	return response, nil
}

// worker resolves single days from the jobs channel
func (s *FeedService) worker(ctx context.Context, jobs <-chan string, results chan<- FetchResult) {
	for date := range jobs {
		select {
		case <-ctx.Done():
			results <- FetchResult{Date: date, Error: ctx.Err()}
			continue
		default:
		}

		resp, err := s.Execute(ctx, FeedRequest{Date: date})
		if err != nil {
			results <- FetchResult{Date: date, Error: err}
			continue
		}

		results <- FetchResult{
			Date:    date,
			Count:   resp.Feed.Count(),
			Source:  resp.Source,
			Success: true,
		}
	}
}

// CachedDates lists the dates available offline
func (s *FeedService) CachedDates(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// ExpandDates validates a feed date range and returns every date in it. The
// end may be at most seven days after the start, the span of one feed call.
func ExpandDates(start, end string) ([]string, error) {
	return expandDateRange(start, end, 8)
}

func expandDateRange(start, end string, maxDays int) ([]string, error) {
	if end == "" {
		end = start
	}
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", start)
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", end)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("end date %s is before start date %s", end, start)
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if len(dates) == maxDays {
			return nil, fmt.Errorf("date range %s..%s exceeds %d days", start, end, maxDays)
		}
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}

// Today returns the current date in feed format
func Today() string {
	return time.Now().Format(dateLayout)
}
