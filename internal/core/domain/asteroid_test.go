package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/neo-cli/pkg/physics"
)

const sampleRecord = `{
  "id": "2465633",
  "name": "465633 (2009 JR5)",
  "nasa_jpl_url": "https://ssd.jpl.nasa.gov/tools/sbdb_lookup.html#/?sstr=2465633",
  "absolute_magnitude_h": 20.48,
  "estimated_diameter": {
    "kilometers": {
      "estimated_diameter_min": 0.2130860292,
      "estimated_diameter_max": 0.4764748465
    }
  },
  "is_potentially_hazardous_asteroid": true,
  "close_approach_data": [
    {
      "close_approach_date": "2015-09-08",
      "close_approach_date_full": "2015-Sep-08 20:28",
      "relative_velocity": {"kilometers_per_second": "18.1279360862"},
      "miss_distance": {"astronomical": "0.3027469457", "kilometers": "45290298.225725659"},
      "orbiting_body": "Earth"
    },
    {
      "close_approach_date": "2016-01-01",
      "relative_velocity": {"kilometers_per_second": "1.0"},
      "miss_distance": {"kilometers": "1.0"}
    }
  ],
  "is_sentry_object": false
}`

func mustParse(t *testing.T, raw string) *NEORecord {
	t.Helper()
	rec, err := ParseRecord([]byte(raw))
	require.NoError(t, err)
	return rec
}

func TestBuildAsteroid(t *testing.T) {
	a, err := BuildAsteroid(mustParse(t, sampleRecord))
	require.NoError(t, err)

	assert.Equal(t, "465633 (2009 JR5)", a.Name)
	assert.Equal(t, "2465633", a.ID)
	assert.True(t, a.HasAbsoluteMagnitude)
	assert.Equal(t, 20.48, a.AbsoluteMagnitudeH)
	assert.True(t, a.IsHazardous)
	assert.Equal(t, "2015-09-08", a.CloseApproachDate)
	assert.Equal(t, 18.1279360862, a.RelativeVelocityKmPerS)
	assert.Equal(t, 45290298.225725659, a.MissDistanceKm)
	assert.Equal(t, 2, a.CloseApproachCount)
	assert.Equal(t, KindAsteroid, a.Kind())
}

func TestBuildAsteroid_DiameterRoundTrip(t *testing.T) {
	a, err := BuildAsteroid(mustParse(t, sampleRecord))
	require.NoError(t, err)

	assert.Equal(t, 0.2130860292, a.MinDiameterKm)
	assert.Equal(t, 0.4764748465, a.MaxDiameterKm)
	assert.Equal(t, a.MinDiameterKm, a.DiameterKm)
}

func TestBuildAsteroid_MassIsDerived(t *testing.T) {
	a, err := BuildAsteroid(mustParse(t, sampleRecord))
	require.NoError(t, err)

	want, err := physics.EstimateAsteroidMassKg(a.MinDiameterKm, a.MaxDiameterKm, physics.DefaultDensityKgPerM3)
	require.NoError(t, err)
	assert.Equal(t, want, a.MassKg)

	denser, err := BuildAsteroidWithDensity(mustParse(t, sampleRecord), 2*physics.DefaultDensityKgPerM3)
	require.NoError(t, err)
	assert.InDelta(t, 2*a.MassKg, denser.MassKg, a.MassKg*1e-12)
}

func TestBuildAsteroid_OptionalFields(t *testing.T) {
	raw := strings.NewReplacer(
		`"id": "2465633",`, "",
		`"absolute_magnitude_h": 20.48,`, "",
	).Replace(sampleRecord)

	a, err := BuildAsteroid(mustParse(t, raw))
	require.NoError(t, err)
	assert.Empty(t, a.ID)
	assert.False(t, a.HasAbsoluteMagnitude)
}

func TestBuildAsteroid_Malformed(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
	}{
		{"missing name", `"name": "465633 (2009 JR5)",`, ""},
		{"missing close approach data", `"close_approach_data": [`, `"other": [`},
		{"empty close approach data", `"close_approach_data": [`, `"close_approach_data": [], "x": [`},
		{"missing hazard flag", `"is_potentially_hazardous_asteroid": true,`, ""},
		{"missing min diameter", `"estimated_diameter_min": 0.2130860292,`, ""},
		{"min above max", `"estimated_diameter_min": 0.2130860292`, `"estimated_diameter_min": 0.9`},
		{"zero min", `"estimated_diameter_min": 0.2130860292`, `"estimated_diameter_min": 0`},
		{"unparsable velocity", `"18.1279360862"`, `"fast"`},
		{"negative velocity", `"18.1279360862"`, `"-3.2"`},
		{"nan miss distance", `"45290298.225725659"`, `"NaN"`},
		{"negative miss distance", `"45290298.225725659"`, `"-1"`},
		{"missing date", `"close_approach_date": "2015-09-08",`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := strings.Replace(sampleRecord, tt.old, tt.new, 1)
			require.NotEqual(t, sampleRecord, raw)

			rec, err := ParseRecord([]byte(raw))
			if err == nil {
				_, err = BuildAsteroid(rec)
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestBuildAsteroid_NumericVelocityIsTypeMismatch(t *testing.T) {
	raw := strings.Replace(sampleRecord, `"18.1279360862"`, `18.1279360862`, 1)

	_, err := ParseRecord([]byte(raw))
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestBuildAsteroid_NilRecord(t *testing.T) {
	_, err := BuildAsteroid(nil)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestBuildAsteroid_InvalidDensity(t *testing.T) {
	_, err := BuildAsteroidWithDensity(mustParse(t, sampleRecord), 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestAsteroid_Derivations(t *testing.T) {
	a, err := BuildAsteroid(mustParse(t, sampleRecord))
	require.NoError(t, err)

	energy, err := a.ImpactEnergyMegatonsTNT()
	require.NoError(t, err)
	assert.InDelta(t, 0.5*a.MassKg*(a.RelativeVelocityKmPerS*1000)*(a.RelativeVelocityKmPerS*1000)/4.184e15, energy, 1e-9)

	g, err := a.SurfaceGravity()
	require.NoError(t, err)
	assert.Greater(t, g, 0.0)

	v, err := a.EscapeVelocityKmPerS()
	require.NoError(t, err)
	assert.Greater(t, v, 0.0)
}

func TestRecordError(t *testing.T) {
	err := RecordError{Index: 3, Name: "Eros", Err: malformed("name", "missing")}

	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "Eros")
	assert.Contains(t, RecordError{Index: 1, Err: ErrMalformedRecord}.Error(), "record 1")
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"433 Eros (A898 PA)", "433-eros-a898-pa"},
		{"(2024 AB1) & Eros", "2024-ab1-eros"},
		{"  Mars  ", "mars"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateSlug(tt.name))
	}
}
