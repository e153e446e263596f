// Package orbit maps orbital parameters and a true anomaly to a 2-D position.
//
// Position is the polar form of the conic-section orbit equation,
// r = a(1-e^2) / (1+e cos v). A negative semi-major axis together with e > 1
// describes a hyperbolic flyby and is accepted as-is. The package has no
// notion of elapsed time: callers advance the anomaly themselves (see Clock).
package orbit

import "math"

// EarthRadiusKm is the mean Earth radius used for display purposes
const EarthRadiusKm = 6371.0

// DefaultFlybyEccentricity is the eccentricity used to present a close
// approach as a hyperbolic trajectory.
const DefaultFlybyEccentricity = 1.5

// Point is a position in the orbital plane
type Point struct {
	X float64
	Y float64
}

// Finite reports whether both coordinates are real numbers
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Radius returns the distance of the point from the focus
func (p Point) Radius() float64 {
	return math.Hypot(p.X, p.Y)
}

// Position returns the scaled Cartesian position of a body at the given true
// anomaly (radians) on a conic with the given semi-major axis and eccentricity.
func Position(semiMajorAxis, eccentricity, trueAnomaly, scaleFactor float64) Point {
	r := semiMajorAxis * (1 - eccentricity*eccentricity) / (1 + eccentricity*math.Cos(trueAnomaly))
	return Point{
		X: r * math.Cos(trueAnomaly) * scaleFactor,
		Y: r * math.Sin(trueAnomaly) * scaleFactor,
	}
}

// DisplaySemiMajorAxis derives the semi-major axis magnitude used to draw a
// close approach: half the miss distance, but never closer than one Earth
// diameter so the body stays outside the drawn Earth disc. The argument is a
// copy; the physical miss distance is left untouched.
func DisplaySemiMajorAxis(missDistanceKm float64) float64 {
	return math.Max(missDistanceKm/2, 2*EarthRadiusKm)
}

// Params describes one conic to present
type Params struct {
	SemiMajorAxis float64
	Eccentricity  float64
}

// Hyperbolic reports whether the params describe an unbound trajectory
func (p Params) Hyperbolic() bool {
	return p.Eccentricity > 1
}

// At returns the position at the given true anomaly
func (p Params) At(trueAnomaly, scaleFactor float64) Point {
	return Position(p.SemiMajorAxis, p.Eccentricity, trueAnomaly, scaleFactor)
}

// AnomalyLimit returns the largest |true anomaly| for which the body is on
// the physical branch of the conic. Bound orbits have no limit and return Pi.
func (p Params) AnomalyLimit() float64 {
	if p.Eccentricity <= 1 {
		return math.Pi
	}
	return math.Acos(-1 / p.Eccentricity)
}

// OnBranch reports whether the true anomaly lies on the physical branch of
// the conic, i.e. 1 + e cos(v) > 0. Always true for circles and ellipses.
func (p Params) OnBranch(trueAnomaly float64) bool {
	return 1+p.Eccentricity*math.Cos(trueAnomaly) > 0
}

// Hyperbolic builds the flyby presentation of a close approach from its miss
// distance using DefaultFlybyEccentricity.
func Hyperbolic(missDistanceKm float64) Params {
	return HyperbolicWith(missDistanceKm, DefaultFlybyEccentricity)
}

// HyperbolicWith is Hyperbolic with an explicit eccentricity
func HyperbolicWith(missDistanceKm, eccentricity float64) Params {
	return Params{
		SemiMajorAxis: -DisplaySemiMajorAxis(missDistanceKm),
		Eccentricity:  eccentricity,
	}
}

// Elliptical builds the bound presentation of an orbit
func Elliptical(semiMajorAxis, eccentricity float64) Params {
	return Params{SemiMajorAxis: semiMajorAxis, Eccentricity: eccentricity}
}

// Sample evaluates the conic from one anomaly to another in fixed steps.
// Points that fall off the physical branch (non-finite, or behind the focus
// of a hyperbola) are skipped.
func Sample(p Params, from, to, step, scaleFactor float64) []Point {
	if step <= 0 || to < from {
		return nil
	}

	n := int(math.Floor((to-from)/step)) + 1
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		theta := from + float64(i)*step
		if !p.OnBranch(theta) {
			continue
		}
		pt := p.At(theta, scaleFactor)
		if !pt.Finite() {
			continue
		}
		points = append(points, pt)
	}
	return points
}
