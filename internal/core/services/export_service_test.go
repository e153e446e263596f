package services

import (
	"context"
	"testing"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/ports/mocks"
)

func TestExportService_Execute(t *testing.T) {
	writer := mocks.NewMockReportWriter()
	svc := NewExportService(newTestCatalog(t), writer, nil)

	resp, err := svc.Execute(context.Background(), ExportRequest{
		Catalog:               CatalogRequest{Feed: FeedRequest{Date: fixtureDate}},
		Path:                  "/exports/neo.csv",
		IncludeEscapeVelocity: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Written != 3 {
		t.Errorf("expected 3 reports written, got %d", resp.Written)
	}
	if len(resp.Skipped) != 1 {
		t.Errorf("expected 1 skipped record, got %d", len(resp.Skipped))
	}

	reports, escape := writer.Written("/exports/neo.csv")
	if len(reports) != 3 {
		t.Fatalf("expected writer to receive 3 reports, got %d", len(reports))
	}
	if !escape {
		t.Error("expected escape velocity column to be requested")
	}
	if reports[0].Name != "Apophis (2004 MN4)" {
		t.Errorf("expected catalog order, got %s first", reports[0].Name)
	}
}

func TestExportService_Execute_HazardousOnly(t *testing.T) {
	writer := mocks.NewMockReportWriter()
	svc := NewExportService(newTestCatalog(t), writer, nil)

	resp, err := svc.Execute(context.Background(), ExportRequest{
		Catalog: CatalogRequest{Feed: FeedRequest{Date: fixtureDate}, HazardousOnly: true},
		Path:    "/exports/hazardous.csv",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Written != 1 {
		t.Errorf("expected 1 report written, got %d", resp.Written)
	}
	if _, escape := writer.Written("/exports/hazardous.csv"); escape {
		t.Error("expected no escape velocity column")
	}
}

func TestExportService_Execute_Errors(t *testing.T) {
	writer := mocks.NewMockReportWriter()
	svc := NewExportService(newTestCatalog(t), writer, nil)

	if _, err := svc.Execute(context.Background(), ExportRequest{
		Catalog: CatalogRequest{Feed: FeedRequest{Date: fixtureDate}},
	}); err == nil {
		t.Error("expected error for empty path")
	}

	writer.SetShouldFail(true)
	if _, err := svc.Execute(context.Background(), ExportRequest{
		Catalog: CatalogRequest{Feed: FeedRequest{Date: fixtureDate}},
		Path:    "/exports/neo.csv",
	}); err == nil {
		t.Error("expected error when the writer fails")
	}
}

func TestExportService_WriteReports(t *testing.T) {
	writer := mocks.NewMockReportWriter()
	svc := NewExportService(newTestCatalog(t), writer, nil)

	merged := domain.Report{ID: "1001", Name: "A & B"}
	if err := svc.WriteReports(context.Background(), "/exports/merged.csv", []domain.Report{merged}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reports, _ := writer.Written("/exports/merged.csv")
	if len(reports) != 1 || reports[0].Name != "A & B" {
		t.Errorf("unexpected reports: %+v", reports)
	}
}
