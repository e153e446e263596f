package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/ports"
)

// ExportService writes catalog reports through a report writer
type ExportService struct {
	catalog *CatalogService
	writer  ports.ReportWriter
	logger  *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(catalog *CatalogService, writer ports.ReportWriter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		catalog: catalog,
		writer:  writer,
		logger:  logger,
	}
}

// ExportRequest represents a request to export a feed's asteroids
type ExportRequest struct {
	Catalog               CatalogRequest
	Path                  string
	IncludeEscapeVelocity bool
}

// ExportResponse represents the response from exporting
type ExportResponse struct {
	Path    string
	Written int
	Skipped []domain.RecordError
	Source  string
	Warning string
}

// Execute builds the catalog and appends its reports to the export file
func (s *ExportService) Execute(ctx context.Context, req ExportRequest) (*ExportResponse, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("export path cannot be empty")
	}

	resp, err := s.catalog.Execute(ctx, req.Catalog)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.Report, len(resp.Entries))
	for i, e := range resp.Entries {
		reports[i] = e.Report
	}

	if err := s.WriteReports(ctx, req.Path, reports, req.IncludeEscapeVelocity); err != nil {
		return nil, err
	}

	return &ExportResponse{
		Path:    req.Path,
		Written: len(reports),
		Skipped: resp.Skipped,
		Source:  resp.Source,
		Warning: resp.Warning,
	}, nil
}

// WriteReports appends already-derived reports, such as a merged body
func (s *ExportService) WriteReports(ctx context.Context, path string, reports []domain.Report, includeEscapeVelocity bool) error {
	if err := s.writer.Write(ctx, path, reports, includeEscapeVelocity); err != nil {
		return fmt.Errorf("failed to export reports: %w", err)
	}
	s.logger.Info("reports exported", zap.String("path", path), zap.Int("count", len(reports)))
	return nil
}
