package physics

import "math"

// Perihelion returns the closest approach distance a(1-e) of a bound orbit.
// The result has the unit of the semi-major axis.
func Perihelion(semiMajorAxis, eccentricity float64) (float64, error) {
	if err := checkBound(semiMajorAxis, eccentricity); err != nil {
		return 0, err
	}
	return semiMajorAxis * (1 - eccentricity), nil
}

// Aphelion returns the farthest distance a(1+e) of a bound orbit.
func Aphelion(semiMajorAxis, eccentricity float64) (float64, error) {
	if err := checkBound(semiMajorAxis, eccentricity); err != nil {
		return 0, err
	}
	return semiMajorAxis * (1 + eccentricity), nil
}

func checkBound(semiMajorAxis, eccentricity float64) error {
	if err := checkPositive("semi-major axis", semiMajorAxis); err != nil {
		return err
	}
	if math.IsNaN(eccentricity) || eccentricity < 0 || eccentricity >= 1 {
		return invalid("eccentricity of a bound orbit must be in [0, 1), got %v", eccentricity)
	}
	return nil
}

// PerihelionVelocityKmPerS returns the heliocentric speed at perihelion for an
// orbit with semi-major axis in AU, using the vis-viva equation
// v^2 = GM (2/r - 1/a).
func PerihelionVelocityKmPerS(semiMajorAxisAU, eccentricity float64) (float64, error) {
	q, err := Perihelion(semiMajorAxisAU, eccentricity)
	if err != nil {
		return 0, err
	}

	aM := semiMajorAxisAU * AUKm * 1000
	rM := q * AUKm * 1000
	return math.Sqrt(SunGM*(2/rM-1/aM)) / 1000, nil
}

// IntersectsEarthOrbit reports whether an orbit with the given perihelion and
// aphelion distances (AU) crosses the 1 AU circle of Earth's orbit.
func IntersectsEarthOrbit(perihelionAU, aphelionAU float64) (bool, error) {
	if err := checkPositive("perihelion", perihelionAU); err != nil {
		return false, err
	}
	if err := checkPositive("aphelion", aphelionAU); err != nil {
		return false, err
	}
	if perihelionAU > aphelionAU {
		return false, invalid("perihelion %v exceeds aphelion %v", perihelionAU, aphelionAU)
	}
	return perihelionAU <= 1 && aphelionAU >= 1, nil
}

// MissDistanceAU converts a miss distance in kilometers to astronomical units
func MissDistanceAU(missDistanceKm float64) (float64, error) {
	if err := checkNonNegative("miss distance", missDistanceKm); err != nil {
		return 0, err
	}
	return missDistanceKm / AUKm, nil
}
