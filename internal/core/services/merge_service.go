package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
)

// MergeService combines two catalog asteroids into a hypothetical body
type MergeService struct {
	catalog *CatalogService
	logger  *zap.Logger
}

// NewMergeService creates a new merge service
func NewMergeService(catalog *CatalogService, logger *zap.Logger) *MergeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MergeService{
		catalog: catalog,
		logger:  logger,
	}
}

// MergeRequest represents a request to merge two asteroids of a feed
type MergeRequest struct {
	Feed   FeedRequest
	First  string // id or name; identity of the result comes from this one
	Second string
}

// MergeResponse represents the merged body and its operands
type MergeResponse struct {
	First  domain.Asteroid
	Second domain.Asteroid
	Merged domain.Asteroid
	Report domain.Report
}

// Execute resolves both operands in the feed and merges them
func (s *MergeService) Execute(ctx context.Context, req MergeRequest) (*MergeResponse, error) {
	resp, err := s.catalog.Execute(ctx, CatalogRequest{Feed: req.Feed, SortBy: "name"})
	if err != nil {
		return nil, err
	}

	first, err := s.catalog.Find(resp.Entries, req.First)
	if err != nil {
		return nil, fmt.Errorf("first operand: %w", err)
	}
	second, err := s.catalog.Find(resp.Entries, req.Second)
	if err != nil {
		return nil, fmt.Errorf("second operand: %w", err)
	}

	return s.Merge(first.Asteroid, second.Asteroid)
}

// Merge combines two already-built asteroids
func (s *MergeService) Merge(a, b domain.Asteroid) (*MergeResponse, error) {
	merged := domain.Merge(a, b)

	report, err := domain.NewReport(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to derive merged body: %w", err)
	}

	s.logger.Info("asteroids merged",
		zap.String("first", a.Name),
		zap.String("second", b.Name),
		zap.Bool("hazardous", merged.IsHazardous),
	)

	return &MergeResponse{
		First:  a,
		Second: b,
		Merged: merged,
		Report: report,
	}, nil
}
