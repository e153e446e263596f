package domain

import (
	"fmt"
	"strconv"
)

// Report is the flat per-asteroid record handed to persistence collaborators
type Report struct {
	ID                     string
	Name                   string
	JPLURL                 string
	AbsoluteMagnitudeH     float64
	HasAbsoluteMagnitude   bool
	MinDiameterKm          float64
	MaxDiameterKm          float64
	IsHazardous            bool
	CloseApproachDate      string
	RelativeVelocityKmPerS float64
	MissDistanceKm         float64
	MassKg                 float64
	SurfaceGravity         float64
	ImpactEnergyMegatons   float64
	EscapeVelocityKmPerS   float64
}

// reportColumns is the field order of a report row
var reportColumns = []string{
	"id",
	"name",
	"jplUrl",
	"absoluteMagnitudeH",
	"minDiameterKm",
	"maxDiameterKm",
	"isHazardous",
	"closeApproachDate",
	"relativeVelocityKmPerS",
	"missDistanceKm",
	"massKg",
	"surfaceGravity",
	"impactEnergyMegatons",
}

// ReportColumns returns the column names of a report row, optionally
// followed by escapeVelocity
func ReportColumns(includeEscapeVelocity bool) []string {
	cols := make([]string, len(reportColumns), len(reportColumns)+1)
	copy(cols, reportColumns)
	if includeEscapeVelocity {
		cols = append(cols, "escapeVelocity")
	}
	return cols
}

// NewReport derives every reported quantity of an asteroid. Derivation
// errors are returned, never replaced by zero.
func NewReport(a Asteroid) (Report, error) {
	gravity, err := a.SurfaceGravity()
	if err != nil {
		return Report{}, fmt.Errorf("surface gravity of %s: %w", a.Name, err)
	}
	energy, err := a.ImpactEnergyMegatonsTNT()
	if err != nil {
		return Report{}, fmt.Errorf("impact energy of %s: %w", a.Name, err)
	}
	escape, err := a.EscapeVelocityKmPerS()
	if err != nil {
		return Report{}, fmt.Errorf("escape velocity of %s: %w", a.Name, err)
	}

	return Report{
		ID:                     a.ID,
		Name:                   a.Name,
		JPLURL:                 a.JPLURL,
		AbsoluteMagnitudeH:     a.AbsoluteMagnitudeH,
		HasAbsoluteMagnitude:   a.HasAbsoluteMagnitude,
		MinDiameterKm:          a.MinDiameterKm,
		MaxDiameterKm:          a.MaxDiameterKm,
		IsHazardous:            a.IsHazardous,
		CloseApproachDate:      a.CloseApproachDate,
		RelativeVelocityKmPerS: a.RelativeVelocityKmPerS,
		MissDistanceKm:         a.MissDistanceKm,
		MassKg:                 a.MassKg,
		SurfaceGravity:         gravity,
		ImpactEnergyMegatons:   energy,
		EscapeVelocityKmPerS:   escape,
	}, nil
}

// Row renders the report in column order. Floats use the shortest
// representation that round-trips.
func (r Report) Row(includeEscapeVelocity bool) []string {
	magnitude := ""
	if r.HasAbsoluteMagnitude {
		magnitude = formatFloat(r.AbsoluteMagnitudeH)
	}

	row := []string{
		r.ID,
		r.Name,
		r.JPLURL,
		magnitude,
		formatFloat(r.MinDiameterKm),
		formatFloat(r.MaxDiameterKm),
		strconv.FormatBool(r.IsHazardous),
		r.CloseApproachDate,
		formatFloat(r.RelativeVelocityKmPerS),
		formatFloat(r.MissDistanceKm),
		formatFloat(r.MassKg),
		formatFloat(r.SurfaceGravity),
		formatFloat(r.ImpactEnergyMegatons),
	}
	if includeEscapeVelocity {
		row = append(row, formatFloat(r.EscapeVelocityKmPerS))
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
