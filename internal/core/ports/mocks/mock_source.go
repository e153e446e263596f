package mocks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
)

// --- MockFeedSource ---

type MockFeedSource struct {
	mu         sync.Mutex
	feeds      map[string]*domain.Feed
	calls      []string
	shouldFail bool
	failError  error
}

func NewMockFeedSource() *MockFeedSource {
	return &MockFeedSource{
		feeds: make(map[string]*domain.Feed),
	}
}

// FetchFeed returns the feed registered for startDate
func (m *MockFeedSource) FetchFeed(ctx context.Context, startDate, endDate string) (*domain.Feed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, startDate)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.shouldFail {
		if m.failError != nil {
			return nil, m.failError
		}
		return nil, fmt.Errorf("fetch failed for %s", startDate)
	}
	feed, ok := m.feeds[startDate]
	if !ok {
		return nil, fmt.Errorf("no feed for %s", startDate)
	}
	return feed, nil
}

func (m *MockFeedSource) SetFeed(date string, feed *domain.Feed) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feeds[date] = feed
}

func (m *MockFeedSource) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
	m.failError = err
}

func (m *MockFeedSource) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// --- MockReportWriter ---

type MockReportWriter struct {
	mu            sync.Mutex
	writes        map[string][]domain.Report
	escapeColumns map[string]bool
	shouldFail    bool
}

func NewMockReportWriter() *MockReportWriter {
	return &MockReportWriter{
		writes:        make(map[string][]domain.Report),
		escapeColumns: make(map[string]bool),
	}
}

func (m *MockReportWriter) Write(ctx context.Context, path string, reports []domain.Report, includeEscapeVelocity bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return fmt.Errorf("write failed for %s", path)
	}
	m.writes[path] = append(m.writes[path], reports...)
	m.escapeColumns[path] = includeEscapeVelocity
	return nil
}

func (m *MockReportWriter) SetShouldFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
}

// Written returns the reports written to path and whether the escape
// velocity column was requested
func (m *MockReportWriter) Written(path string) ([]domain.Report, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[path], m.escapeColumns[path]
}

// --- MockChartRenderer ---

type MockChartRenderer struct {
	mu       sync.Mutex
	rendered []domain.Trajectory
}

func NewMockChartRenderer() *MockChartRenderer {
	return &MockChartRenderer{}
}

func (m *MockChartRenderer) Render(ctx context.Context, trajectory domain.Trajectory, w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rendered = append(m.rendered, trajectory)
	_, err := fmt.Fprintf(w, "<html>%s</html>", trajectory.Name)
	return err
}

func (m *MockChartRenderer) GetRendered() []domain.Trajectory {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Trajectory, len(m.rendered))
	copy(out, m.rendered)
	return out
}
