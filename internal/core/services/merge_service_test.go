package services

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestMergeService_Execute(t *testing.T) {
	svc := NewMergeService(newTestCatalog(t), nil)

	resp, err := svc.Execute(context.Background(), MergeRequest{
		Feed:   FeedRequest{Date: fixtureDate},
		First:  "1001",
		Second: "bennu",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	merged := resp.Merged
	if merged.Name != "Apophis (2004 MN4) & Bennu (1999 RQ36)" {
		t.Errorf("unexpected merged name: %s", merged.Name)
	}
	if merged.ID != "1001" {
		t.Errorf("expected identity of the first operand, got id %s", merged.ID)
	}
	if math.Abs(merged.RelativeVelocityKmPerS-13.4) > 1e-9 {
		t.Errorf("expected summed velocity 13.4, got %g", merged.RelativeVelocityKmPerS)
	}
	if math.Abs(merged.MinDiameterKm-0.75) > 1e-9 {
		t.Errorf("expected summed min diameter 0.75, got %g", merged.MinDiameterKm)
	}
	if merged.MassKg != resp.First.MassKg+resp.Second.MassKg {
		t.Errorf("expected summed mass, got %g", merged.MassKg)
	}
	if !merged.IsHazardous {
		t.Error("expected merged body to be hazardous by velocity")
	}

	if resp.Report.Name != merged.Name || resp.Report.ImpactEnergyMegatons <= 0 {
		t.Errorf("unexpected merged report: %+v", resp.Report)
	}
}

func TestMergeService_Execute_OrderMatters(t *testing.T) {
	svc := NewMergeService(newTestCatalog(t), nil)
	req := FeedRequest{Date: fixtureDate}

	ab, err := svc.Execute(context.Background(), MergeRequest{Feed: req, First: "1001", Second: "1002"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := svc.Execute(context.Background(), MergeRequest{Feed: req, First: "1002", Second: "1001"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ab.Merged.Name == ba.Merged.Name || ab.Merged.ID == ba.Merged.ID {
		t.Error("expected name and identity to follow the first operand")
	}
	if ab.Merged.MassKg != ba.Merged.MassKg {
		t.Errorf("expected summed mass to be order independent, got %g and %g", ab.Merged.MassKg, ba.Merged.MassKg)
	}
	if ab.Merged.IsHazardous != ba.Merged.IsHazardous {
		t.Error("expected hazard classification to be order independent")
	}
}

func TestMergeService_Execute_NotFound(t *testing.T) {
	svc := NewMergeService(newTestCatalog(t), nil)

	tests := []MergeRequest{
		{First: "zzzz", Second: "1002"},
		{First: "1001", Second: "zzzz"},
	}
	for _, req := range tests {
		req.Feed = FeedRequest{Date: fixtureDate}
		if _, err := svc.Execute(context.Background(), req); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound for %s/%s, got %v", req.First, req.Second, err)
		}
	}
}

func TestMergeService_Execute_FeedError(t *testing.T) {
	svc := NewMergeService(newTestCatalog(t), nil)

	_, err := svc.Execute(context.Background(), MergeRequest{
		Feed:   FeedRequest{Date: "2030-01-01"},
		First:  "1001",
		Second: "1002",
	})
	if err == nil {
		t.Fatal("expected error for an uncached date")
	}
}
