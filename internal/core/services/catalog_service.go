package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/pkg/physics"
)

// ErrNotFound is returned when no catalog entry matches a query
var ErrNotFound = errors.New("not found")

// SortKeys lists the accepted CatalogRequest.SortBy values
var SortKeys = []string{"name", "size", "velocity", "distance", "energy", "date"}

// CatalogService turns feed records into asteroids with derived quantities
type CatalogService struct {
	feeds   *FeedService
	density float64
	logger  *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(feeds *FeedService, densityKgM3 float64, logger *zap.Logger) *CatalogService {
	if densityKgM3 <= 0 {
		densityKgM3 = physics.DefaultDensityKgPerM3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		feeds:   feeds,
		density: densityKgM3,
		logger:  logger,
	}
}

// CatalogEntry is one asteroid together with its report and source record
type CatalogEntry struct {
	Asteroid domain.Asteroid
	Report   domain.Report
	Raw      json.RawMessage
}

// CatalogRequest represents a request to list the asteroids of a feed
type CatalogRequest struct {
	Feed          FeedRequest
	HazardousOnly bool
	SortBy        string // one of SortKeys (default: energy)
	Reverse       bool   // Reverse sort order
	Limit         int    // 0 means no limit
}

// CatalogResponse represents the response from listing asteroids
type CatalogResponse struct {
	Entries []CatalogEntry
	Skipped []domain.RecordError
	Total   int // entries built before filtering
	Source  string
	Warning string
}

// Execute resolves the feed, builds every record and applies filter, sort
// and limit. Malformed records are reported in Skipped, never dropped silently.
func (s *CatalogService) Execute(ctx context.Context, req CatalogRequest) (*CatalogResponse, error) {
	if req.SortBy != "" && !IsSortKey(req.SortBy) {
		return nil, fmt.Errorf("invalid sort key %q (expected one of %s)", req.SortBy, strings.Join(SortKeys, ", "))
	}

	feedResp, err := s.feeds.Execute(ctx, req.Feed)
	if err != nil {
		return nil, err
	}

	entries, skipped := s.Build(feedResp.Feed)
	total := len(entries)

	if req.HazardousOnly {
		entries = filterHazardous(entries)
	}
	entries = SortEntries(entries, req.SortBy, req.Reverse)
	if req.Limit > 0 && len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}

	s.logger.Info("catalog built",
		zap.String("source", feedResp.Source),
		zap.Int("built", total),
		zap.Int("skipped", len(skipped)),
		zap.Int("returned", len(entries)),
	)

	return &CatalogResponse{
		Entries: entries,
		Skipped: skipped,
		Total:   total,
		Source:  feedResp.Source,
		Warning: feedResp.Warning,
	}, nil
}

// Build converts every record of a feed, in date order
func (s *CatalogService) Build(feed *domain.Feed) ([]CatalogEntry, []domain.RecordError) {
	if feed == nil {
		return nil, nil
	}

	var entries []CatalogEntry
	var skipped []domain.RecordError

	for i, raw := range feed.All() {
		rec, err := domain.ParseRecord(raw)
		if err != nil {
			skipped = append(skipped, domain.RecordError{Index: i, Err: err})
			continue
		}

		id, name := rec.Label()
		asteroid, err := domain.BuildAsteroidWithDensity(rec, s.density)
		if err != nil {
			skipped = append(skipped, domain.RecordError{Index: i, ID: id, Name: name, Err: err})
			continue
		}

		report, err := domain.NewReport(asteroid)
		if err != nil {
			skipped = append(skipped, domain.RecordError{Index: i, ID: id, Name: name, Err: err})
			continue
		}

		entries = append(entries, CatalogEntry{Asteroid: asteroid, Report: report, Raw: rec.Raw})
	}

	for _, sk := range skipped {
		s.logger.Warn("record skipped", zap.Int("index", sk.Index), zap.String("id", sk.ID), zap.Error(sk.Err))
	}

	return entries, skipped
}

// Find resolves a query to one entry: an exact id, then an exact name
// (case-insensitive), then the best fuzzy match
func (s *CatalogService) Find(entries []CatalogEntry, query string) (CatalogEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return CatalogEntry{}, fmt.Errorf("empty query: %w", ErrNotFound)
	}

	for _, e := range entries {
		if e.Asteroid.ID == query {
			return e, nil
		}
	}
	for _, e := range entries {
		if strings.EqualFold(e.Asteroid.Name, query) {
			return e, nil
		}
	}

	matches := s.Search(entries, query)
	if len(matches) == 0 {
		return CatalogEntry{}, fmt.Errorf("no asteroid matching %q: %w", query, ErrNotFound)
	}
	return matches[0], nil
}

// fuzzyMatch represents a scored match
type fuzzyMatch struct {
	entry CatalogEntry
	score int
}

// Search performs fuzzy search on names and ids with scoring
func (s *CatalogService) Search(entries []CatalogEntry, query string) []CatalogEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	var matches []fuzzyMatch
	for _, e := range entries {
		// Name matches rank above id matches
		if score := fuzzyMatchScore(e.Asteroid.Name, query); score > 0 {
			matches = append(matches, fuzzyMatch{entry: e, score: score + 1000})
			continue
		}
		if score := fuzzyMatchScore(e.Asteroid.ID, query); score > 0 {
			matches = append(matches, fuzzyMatch{entry: e, score: score + 500})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]CatalogEntry, len(matches))
	for i, m := range matches {
		result[i] = m.entry
	}
	return result
}

// IsSortKey reports whether key is an accepted sort key
func IsSortKey(key string) bool {
	for _, k := range SortKeys {
		if k == key {
			return true
		}
	}
	return false
}

// SortEntries orders entries in place. Size, velocity and energy put the
// largest first, distance the closest first, name and date ascend.
func SortEntries(entries []CatalogEntry, sortBy string, reverse bool) []CatalogEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Report, entries[j].Report
		if reverse {
			a, b = b, a
		}
		var less bool
		switch sortBy {
		case "name":
			less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "size":
			less = a.MinDiameterKm > b.MinDiameterKm
		case "velocity":
			less = a.RelativeVelocityKmPerS > b.RelativeVelocityKmPerS
		case "distance":
			less = a.MissDistanceKm < b.MissDistanceKm
		case "date":
			less = a.CloseApproachDate < b.CloseApproachDate
		default: // "energy"
			less = a.ImpactEnergyMegatons > b.ImpactEnergyMegatons
		}
		return less
	})
	return entries
}

func filterHazardous(entries []CatalogEntry) []CatalogEntry {
	var filtered []CatalogEntry
	for _, e := range entries {
		if e.Asteroid.IsHazardous {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// fuzzyMatchScore calculates a score for fuzzy matching query against text
// Returns 0 if no match, higher scores for better matches
func fuzzyMatchScore(text, query string) int {
	if text == "" || query == "" {
		return 0
	}

	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	if text == query {
		return 10000
	}
	if textLower == queryLower {
		return 9000
	}

	// Substring match, with a bonus at the start
	if strings.Contains(textLower, queryLower) {
		score := 5000
		if strings.HasPrefix(textLower, queryLower) {
			score += 2000
		}
		return score
	}

	score := 0
	textRunes := []rune(textLower)
	queryRunes := []rune(queryLower)

	queryIdx := 0
	consecutive := 0
	lastMatchIdx := -1

	for textIdx := 0; textIdx < len(textRunes) && queryIdx < len(queryRunes); textIdx++ {
		if textRunes[textIdx] != queryRunes[queryIdx] {
			continue
		}
		score += 100

		if textIdx == lastMatchIdx+1 {
			consecutive++
			score += consecutive * 50
		} else {
			consecutive = 0
		}

		// Designations look like "(2010 PK9)": parentheses count as word boundaries
		if textIdx == 0 || isBoundary(textRunes[textIdx-1]) {
			score += 200
		}
		if textIdx == 0 {
			score += 300
		}

		lastMatchIdx = textIdx
		queryIdx++
	}

	if queryIdx != len(queryRunes) {
		return 0
	}

	// Penalty for gaps between matches
	if lastMatchIdx >= 0 {
		span := lastMatchIdx + 1
		score -= (span - len(queryRunes)) * 10
	}

	return score
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '_' || r == '(' || r == ')'
}
