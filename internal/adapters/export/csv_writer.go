package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/ports"
)

// ErrHeaderMismatch is returned when an existing file has a header that is
// not one of the report layouts
var ErrHeaderMismatch = errors.New("export file has an unknown header")

// CSVWriter appends asteroid reports to CSV files
type CSVWriter struct {
	mu sync.Mutex
}

// NewCSVWriter creates a new CSV report writer
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Ensure it implements the interface
var _ ports.ReportWriter = (*CSVWriter)(nil)

// Write appends reports to path. The header row is written only when the
// file is new or empty. Appending to an existing file follows that file's
// header, so the escapeVelocity column is added or dropped to match it.
func (w *CSVWriter) Write(ctx context.Context, path string, reports []domain.Report, includeEscapeVelocity bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.Size() > 0 {
		includeEscapeVelocity, err = existingLayout(f)
		if err != nil {
			return fmt.Errorf("failed to append to %s: %w", path, err)
		}
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(domain.ReportColumns(includeEscapeVelocity)); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for _, r := range reports {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cw.Write(r.Row(includeEscapeVelocity)); err != nil {
			return fmt.Errorf("failed to write %s: %w", r.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// existingLayout reads the header of an export file and reports whether it
// carries the escapeVelocity column
func existingLayout(r io.Reader) (bool, error) {
	header, err := csv.NewReader(r).Read()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrHeaderMismatch, err)
	}
	switch {
	case slices.Equal(header, domain.ReportColumns(true)):
		return true, nil
	case slices.Equal(header, domain.ReportColumns(false)):
		return false, nil
	}
	return false, fmt.Errorf("%w: %d columns starting with %q", ErrHeaderMismatch, len(header), header[0])
}
