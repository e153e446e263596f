package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func asteroid(name string, minKm, maxKm, mass, velocity, miss float64, hazardous bool) Asteroid {
	return Asteroid{
		SpaceBody:              SpaceBody{Name: name, DiameterKm: minKm, MassKg: mass},
		ID:                     "id-" + name,
		JPLURL:                 "https://example.test/" + name,
		AbsoluteMagnitudeH:     21.5,
		HasAbsoluteMagnitude:   true,
		MinDiameterKm:          minKm,
		MaxDiameterKm:          maxKm,
		IsHazardous:            hazardous,
		CloseApproachDate:      "2024-01-0" + name[len(name)-1:],
		RelativeVelocityKmPerS: velocity,
		MissDistanceKm:         miss,
		CloseApproachCount:     1,
	}
}

func TestMerge_SumsFields(t *testing.T) {
	a := asteroid("A1", 0.1, 0.3, 1e10, 12.5, 1e6, false)
	b := asteroid("B2", 0.2, 0.5, 3e10, 7.5, 2e6, true)

	m := Merge(a, b)

	assert.InDelta(t, 0.3, m.MinDiameterKm, 1e-12)
	assert.InDelta(t, 0.8, m.MaxDiameterKm, 1e-12)
	assert.Equal(t, 4e10, m.MassKg)
	assert.Equal(t, 20.0, m.RelativeVelocityKmPerS)
	assert.Equal(t, 3e6, m.MissDistanceKm)
	assert.Equal(t, m.MinDiameterKm, m.DiameterKm)
}

func TestMerge_RecomputesHazard(t *testing.T) {
	a := asteroid("A1", 150, 160, 1, 2, 10, false)
	b := asteroid("B2", 150, 160, 1, 2, 10, false)

	m := Merge(a, b)

	assert.Equal(t, 300.0, m.MinDiameterKm)
	assert.True(t, m.IsHazardous)
}

func TestMerge_HazardNotInherited(t *testing.T) {
	a := asteroid("A1", 1, 2, 1, 1, 10, true)
	b := asteroid("B2", 1, 2, 1, 1, 10, true)

	assert.False(t, Merge(a, b).IsHazardous)
}

func TestMerge_VelocityThreshold(t *testing.T) {
	a := asteroid("A1", 1, 2, 1, 2.5, 10, false)
	b := asteroid("B2", 1, 2, 1, 2.5, 10, false)
	assert.False(t, Merge(a, b).IsHazardous, "exactly 5 km/s is not above the threshold")

	c := asteroid("C3", 1, 2, 1, 2.6, 10, false)
	assert.True(t, Merge(a, c).IsHazardous)
}

func TestMerge_IdentityFromFirstOperand(t *testing.T) {
	a := asteroid("A1", 0.1, 0.3, 1e10, 12.5, 1e6, false)
	b := asteroid("B2", 0.2, 0.5, 3e10, 7.5, 2e6, true)

	ab := Merge(a, b)
	ba := Merge(b, a)

	assert.Equal(t, "A1 & B2", ab.Name)
	assert.Equal(t, "B2 & A1", ba.Name)
	assert.Equal(t, a.ID, ab.ID)
	assert.Equal(t, a.JPLURL, ab.JPLURL)
	assert.Equal(t, a.CloseApproachDate, ab.CloseApproachDate)
	assert.Equal(t, b.ID, ba.ID)

	assert.Equal(t, ab.MassKg, ba.MassKg)
	assert.Equal(t, ab.RelativeVelocityKmPerS, ba.RelativeVelocityKmPerS)
}

func TestMerge_DoesNotMutateOperands(t *testing.T) {
	a := asteroid("A1", 0.1, 0.3, 1e10, 12.5, 1e6, false)
	b := asteroid("B2", 0.2, 0.5, 3e10, 7.5, 2e6, true)
	aCopy, bCopy := a, b

	_ = Merge(a, b)

	assert.Equal(t, aCopy, a)
	assert.Equal(t, bCopy, b)
}

func TestClassifyHazard(t *testing.T) {
	assert.False(t, ClassifyHazard(280, 5))
	assert.True(t, ClassifyHazard(280.1, 0))
	assert.True(t, ClassifyHazard(0.01, 5.01))
}
