package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kamal-hamza/neo-cli/pkg/physics"
)

// Asteroid is a near-Earth object built from a feed record. DiameterKm of
// the embedded SpaceBody is the minimum estimated diameter and MassKg is
// always derived from the diameter bounds.
type Asteroid struct {
	SpaceBody

	ID                   string  `json:"id,omitempty"`
	JPLURL               string  `json:"jplUrl,omitempty"`
	AbsoluteMagnitudeH   float64 `json:"absoluteMagnitudeH,omitempty"`
	HasAbsoluteMagnitude bool    `json:"-"`

	MinDiameterKm float64 `json:"minDiameterKm"`
	MaxDiameterKm float64 `json:"maxDiameterKm"`
	IsHazardous   bool    `json:"isHazardous"`

	// First close approach only
	CloseApproachDate      string  `json:"closeApproachDate"`
	RelativeVelocityKmPerS float64 `json:"relativeVelocityKmPerS"`
	MissDistanceKm         float64 `json:"missDistanceKm"`
	OrbitingBody           string  `json:"orbitingBody,omitempty"`
	CloseApproachCount     int     `json:"closeApproachCount"`

	IsSentryObject bool `json:"isSentryObject,omitempty"`
}

// Kind returns KindAsteroid
func (Asteroid) Kind() Kind {
	return KindAsteroid
}

// ImpactEnergyMegatonsTNT returns the kinetic energy at the first close
// approach velocity, in megatons of TNT
func (a Asteroid) ImpactEnergyMegatonsTNT() (float64, error) {
	return physics.ImpactEnergyMegatonsTNT(a.MassKg, a.RelativeVelocityKmPerS)
}

// BuildAsteroid converts a feed record into an asteroid using the default
// bulk density
func BuildAsteroid(rec *NEORecord) (Asteroid, error) {
	return BuildAsteroidWithDensity(rec, physics.DefaultDensityKgPerM3)
}

// BuildAsteroidWithDensity converts a feed record into an asteroid. Any
// missing or unparsable required field yields ErrMalformedRecord; an invalid
// density yields ErrInvalidParameter.
func BuildAsteroidWithDensity(rec *NEORecord, densityKgPerM3 float64) (Asteroid, error) {
	if rec == nil {
		return Asteroid{}, malformed("record", "missing")
	}

	if rec.Name == nil || strings.TrimSpace(*rec.Name) == "" {
		return Asteroid{}, malformed("name", "missing")
	}

	if rec.EstimatedDiameter == nil || rec.EstimatedDiameter.Kilometers == nil {
		return Asteroid{}, malformed("estimated_diameter.kilometers", "missing")
	}
	km := rec.EstimatedDiameter.Kilometers
	if km.Min == nil {
		return Asteroid{}, malformed("estimated_diameter.kilometers.estimated_diameter_min", "missing")
	}
	if km.Max == nil {
		return Asteroid{}, malformed("estimated_diameter.kilometers.estimated_diameter_max", "missing")
	}
	minKm, maxKm := *km.Min, *km.Max
	if !(minKm > 0) || math.IsInf(minKm, 0) {
		return Asteroid{}, malformed("estimated_diameter.kilometers.estimated_diameter_min", "must be positive, got %g", minKm)
	}
	if math.IsInf(maxKm, 0) || minKm > maxKm {
		return Asteroid{}, malformed("estimated_diameter.kilometers", "min %g exceeds max %g", minKm, maxKm)
	}

	if rec.IsPotentiallyHazardous == nil {
		return Asteroid{}, malformed("is_potentially_hazardous_asteroid", "missing")
	}

	if len(rec.CloseApproachData) == 0 {
		return Asteroid{}, malformed("close_approach_data", "missing")
	}
	approach := rec.CloseApproachData[0]
	if approach.Date == nil || strings.TrimSpace(*approach.Date) == "" {
		return Asteroid{}, malformed("close_approach_data[0].close_approach_date", "missing")
	}
	if approach.RelativeVelocity == nil {
		return Asteroid{}, malformed("close_approach_data[0].relative_velocity.kilometers_per_second", "missing")
	}
	velocity, err := parseQuantity("close_approach_data[0].relative_velocity.kilometers_per_second", approach.RelativeVelocity.KilometersPerSecond)
	if err != nil {
		return Asteroid{}, err
	}
	if approach.MissDistance == nil {
		return Asteroid{}, malformed("close_approach_data[0].miss_distance.kilometers", "missing")
	}
	miss, err := parseQuantity("close_approach_data[0].miss_distance.kilometers", approach.MissDistance.Kilometers)
	if err != nil {
		return Asteroid{}, err
	}

	mass, err := physics.EstimateAsteroidMassKg(minKm, maxKm, densityKgPerM3)
	if err != nil {
		return Asteroid{}, fmt.Errorf("failed to estimate mass: %w", err)
	}

	a := Asteroid{
		SpaceBody: SpaceBody{
			Name:       *rec.Name,
			DiameterKm: minKm,
			MassKg:     mass,
		},
		MinDiameterKm:          minKm,
		MaxDiameterKm:          maxKm,
		IsHazardous:            *rec.IsPotentiallyHazardous,
		CloseApproachDate:      *approach.Date,
		RelativeVelocityKmPerS: velocity,
		MissDistanceKm:         miss,
		OrbitingBody:           approach.OrbitingBody,
		CloseApproachCount:     len(rec.CloseApproachData),
		IsSentryObject:         rec.IsSentryObject,
	}
	if rec.ID != nil {
		a.ID = *rec.ID
	}
	if rec.NasaJPLURL != nil {
		a.JPLURL = *rec.NasaJPLURL
	}
	if rec.AbsoluteMagnitudeH != nil {
		a.AbsoluteMagnitudeH = *rec.AbsoluteMagnitudeH
		a.HasAbsoluteMagnitude = true
	}

	return a, nil
}

// parseQuantity parses a numeric string that must be a finite, non-negative value
func parseQuantity(field string, s *string) (float64, error) {
	if s == nil {
		return 0, malformed(field, "missing")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return 0, malformed(field, "not a number: %q", *s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, malformed(field, "not finite: %q", *s)
	}
	if v < 0 {
		return 0, malformed(field, "negative value %g", v)
	}
	return v, nil
}
