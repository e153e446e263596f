package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
)

const fixtureDate = "2024-01-01"

func neoJSON(id, name string, minKm, maxKm float64, hazardous bool, date, velocity, miss string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
  "id": %q,
  "name": %q,
  "nasa_jpl_url": "https://ssd.jpl.nasa.gov/?sstr=%s",
  "absolute_magnitude_h": 19.7,
  "estimated_diameter": {"kilometers": {"estimated_diameter_min": %g, "estimated_diameter_max": %g}},
  "is_potentially_hazardous_asteroid": %t,
  "close_approach_data": [{
    "close_approach_date": %q,
    "relative_velocity": {"kilometers_per_second": %q},
    "miss_distance": {"kilometers": %q},
    "orbiting_body": "Earth"
  }],
  "is_sentry_object": false
}`, id, name, id, minKm, maxKm, hazardous, date, velocity, miss))
}

// fixtureFeed returns one day with three valid records and one malformed one.
// By impact energy the order is Apophis, Bennu, Small.
func fixtureFeed(t *testing.T, date string) *domain.Feed {
	t.Helper()
	records := []json.RawMessage{
		neoJSON("1002", "Bennu (1999 RQ36)", 0.45, 0.55, false, date, "6.0", "750000"),
		neoJSON("1001", "Apophis (2004 MN4)", 0.3, 0.6, true, date, "7.4", "38000"),
		json.RawMessage(`{"id": "1004", "name": "Broken"}`),
		neoJSON("1003", "Small (2024 AA)", 0.01, 0.02, false, date, "12.5", "1200000"),
	}
	return &domain.Feed{
		ElementCount:     len(records),
		NearEarthObjects: map[string][]json.RawMessage{date: records},
	}
}

func entryNames(entries []CatalogEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Asteroid.Name
	}
	return names
}
