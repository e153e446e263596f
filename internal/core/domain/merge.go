package domain

// Hazard policy thresholds applied when a merged body is reclassified
const (
	HazardDiameterThresholdKm     = 280.0
	HazardVelocityThresholdKmPerS = 5.0
)

// ClassifyHazard applies the hazard policy to a minimum diameter and a
// relative velocity
func ClassifyHazard(minDiameterKm, velocityKmPerS float64) bool {
	return minDiameterKm > HazardDiameterThresholdKm || velocityKmPerS > HazardVelocityThresholdKmPerS
}

// Merge combines two asteroids into a new hypothetical body.
//
// Diameters, mass, velocity and miss distance are summed, and the hazard flag
// is recomputed from the summed values rather than inherited. The result is
// named "a & b" and carries id, JPL URL, absolute magnitude and close-approach
// date of a. Merge is therefore not symmetric: Merge(a, b) and Merge(b, a)
// agree on every summed field but differ in name and identity.
//
// The diameter used for gravity and escape velocity is the summed minimum
// diameter, matching how BuildAsteroid sets DiameterKm. It is not the first
// operand's diameter, so derived quantities of a merged body grow with both
// operands.
func Merge(a, b Asteroid) Asteroid {
	merged := a

	merged.Name = a.Name + " & " + b.Name
	merged.MinDiameterKm = a.MinDiameterKm + b.MinDiameterKm
	merged.MaxDiameterKm = a.MaxDiameterKm + b.MaxDiameterKm
	merged.DiameterKm = merged.MinDiameterKm
	merged.MassKg = a.MassKg + b.MassKg
	merged.RelativeVelocityKmPerS = a.RelativeVelocityKmPerS + b.RelativeVelocityKmPerS
	merged.MissDistanceKm = a.MissDistanceKm + b.MissDistanceKm
	merged.IsHazardous = ClassifyHazard(merged.MinDiameterKm, merged.RelativeVelocityKmPerS)

	return merged
}
