package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Feed is one response of the NeoWs feed endpoint. Records are kept raw so a
// single malformed object does not prevent the rest of the day from loading.
type Feed struct {
	ElementCount     int                          `json:"element_count"`
	NearEarthObjects map[string][]json.RawMessage `json:"near_earth_objects"`
	Links            map[string]string            `json:"links,omitempty"`
}

// ParseFeed decodes a feed document
func ParseFeed(data []byte) (*Feed, error) {
	var feed Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	if feed.NearEarthObjects == nil {
		feed.NearEarthObjects = make(map[string][]json.RawMessage)
	}
	return &feed, nil
}

// Dates returns the feed's dates in ascending order
func (f *Feed) Dates() []string {
	dates := make([]string, 0, len(f.NearEarthObjects))
	for date := range f.NearEarthObjects {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Records returns the raw records for one date
func (f *Feed) Records(date string) []json.RawMessage {
	return f.NearEarthObjects[date]
}

// All returns every raw record ordered by date
func (f *Feed) All() []json.RawMessage {
	var all []json.RawMessage
	for _, date := range f.Dates() {
		all = append(all, f.NearEarthObjects[date]...)
	}
	return all
}

// Count returns the number of raw records across all dates
func (f *Feed) Count() int {
	n := 0
	for _, records := range f.NearEarthObjects {
		n += len(records)
	}
	return n
}

// Merge folds another feed's dates into f, replacing dates present in both
func (f *Feed) Merge(other *Feed) {
	if other == nil {
		return
	}
	if f.NearEarthObjects == nil {
		f.NearEarthObjects = make(map[string][]json.RawMessage)
	}
	for date, records := range other.NearEarthObjects {
		f.NearEarthObjects[date] = records
	}
	f.ElementCount = f.Count()
}

// NEORecord mirrors one near-Earth object of the feed. Pointer fields
// distinguish an absent value from a zero value.
type NEORecord struct {
	ID                     *string            `json:"id"`
	Name                   *string            `json:"name"`
	NasaJPLURL             *string            `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH     *float64           `json:"absolute_magnitude_h"`
	EstimatedDiameter      *EstimatedDiameter `json:"estimated_diameter"`
	IsPotentiallyHazardous *bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData      []CloseApproach    `json:"close_approach_data"`
	IsSentryObject         bool               `json:"is_sentry_object"`

	Raw json.RawMessage `json:"-"`
}

// EstimatedDiameter holds the diameter estimates per unit system
type EstimatedDiameter struct {
	Kilometers *DiameterRange `json:"kilometers"`
}

// DiameterRange is the min/max estimate of a diameter
type DiameterRange struct {
	Min *float64 `json:"estimated_diameter_min"`
	Max *float64 `json:"estimated_diameter_max"`
}

// CloseApproach is one Earth flyby event. Numeric values arrive as strings.
type CloseApproach struct {
	Date             *string           `json:"close_approach_date"`
	DateFull         string            `json:"close_approach_date_full,omitempty"`
	RelativeVelocity *RelativeVelocity `json:"relative_velocity"`
	MissDistance     *MissDistance     `json:"miss_distance"`
	OrbitingBody     string            `json:"orbiting_body,omitempty"`
}

type RelativeVelocity struct {
	KilometersPerSecond *string `json:"kilometers_per_second"`
}

type MissDistance struct {
	Astronomical *string `json:"astronomical,omitempty"`
	Kilometers   *string `json:"kilometers"`
}

// ParseRecord decodes one feed object. A structural type mismatch is
// reported as ErrMalformedRecord.
func ParseRecord(raw []byte) (*NEORecord, error) {
	var rec NEORecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	rec.Raw = append(json.RawMessage(nil), raw...)
	return &rec, nil
}

// Label returns the best available identifier for messages
func (r *NEORecord) Label() (id, name string) {
	if r == nil {
		return "", ""
	}
	if r.ID != nil {
		id = *r.ID
	}
	if r.Name != nil {
		name = *r.Name
	}
	return id, name
}
