package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport(t *testing.T) {
	a, err := BuildAsteroid(mustParse(t, sampleRecord))
	require.NoError(t, err)

	r, err := NewReport(a)
	require.NoError(t, err)

	assert.Equal(t, a.Name, r.Name)
	assert.Equal(t, a.MassKg, r.MassKg)
	assert.Greater(t, r.ImpactEnergyMegatons, 0.0)
	assert.Greater(t, r.EscapeVelocityKmPerS, 0.0)
}

func TestNewReport_PropagatesDerivationError(t *testing.T) {
	_, err := NewReport(Asteroid{SpaceBody: SpaceBody{Name: "broken", DiameterKm: 0, MassKg: 1}})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestReport_Row(t *testing.T) {
	r := Report{
		ID:                     "1",
		Name:                   "Eros",
		MinDiameterKm:          0.5,
		MaxDiameterKm:          1,
		IsHazardous:            true,
		CloseApproachDate:      "2024-01-01",
		RelativeVelocityKmPerS: 12.25,
		MissDistanceKm:         1e7,
		MassKg:                 1.5e12,
		SurfaceGravity:         0.001,
		ImpactEnergyMegatons:   27,
		EscapeVelocityKmPerS:   0.0002,
	}

	row := r.Row(false)
	require.Len(t, row, len(ReportColumns(false)))
	assert.Equal(t, "", row[3])
	assert.Equal(t, "true", row[6])
	assert.Equal(t, "1e+07", row[9])
	assert.Equal(t, "1.5e+12", row[10])

	withEscape := r.Row(true)
	require.Len(t, withEscape, len(ReportColumns(true)))
	assert.Equal(t, "0.0002", withEscape[13])
	assert.Equal(t, "escapeVelocity", ReportColumns(true)[13])
}
