package ports

import (
	"context"
	"io"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
)

// FeedSource defines the port for retrieving NEO feeds from a remote service
type FeedSource interface {
	// FetchFeed returns the feed for an inclusive date range (YYYY-MM-DD)
	FetchFeed(ctx context.Context, startDate, endDate string) (*domain.Feed, error)
}

// FeedStore defines the port for local feed persistence
type FeedStore interface {
	// Save persists the feed under the given date
	Save(ctx context.Context, date string, feed *domain.Feed) error

	// Load retrieves the feed stored for a date
	Load(ctx context.Context, date string) (*domain.Feed, error)

	// LoadFile reads a feed document from an arbitrary path
	LoadFile(ctx context.Context, path string) (*domain.Feed, error)

	// Exists checks if a feed is stored for the date
	Exists(ctx context.Context, date string) bool

	// List returns the stored dates in ascending order
	List(ctx context.Context) ([]string, error)
}

// ReportWriter defines the port for persisting computed asteroid reports
type ReportWriter interface {
	// Write appends reports to the file at path, writing the header only
	// when the file is new or empty
	Write(ctx context.Context, path string, reports []domain.Report, includeEscapeVelocity bool) error
}

// ChartRenderer defines the port for rendering a trajectory to a document
type ChartRenderer interface {
	// Render writes the trajectory chart to w
	Render(ctx context.Context, trajectory domain.Trajectory, w io.Writer) error
}
