package orbit

import "strings"

// PlanetOrbit holds the heliocentric elements used to present a planet on
// an elliptical path around the Sun.
type PlanetOrbit struct {
	Name          string
	SemiMajorAxis float64 // in millions of km
	Eccentricity  float64
	PeriodDays    float64
}

var planetOrbits = []PlanetOrbit{
	{"Mercury", 57.9, 0.2056, 88.0},
	{"Venus", 108.2, 0.0068, 224.7},
	{"Earth", 149.6, 0.0167, 365.2},
	{"Mars", 227.9, 0.0934, 687.0},
	{"Jupiter", 778.6, 0.0484, 4331.0},
	{"Saturn", 1434.0, 0.0542, 10747.0},
	{"Uranus", 2871.0, 0.0472, 30589.0},
	{"Neptune", 4495.0, 0.0086, 59800.0},
}

// PlanetOrbits returns a copy of the planetary orbit table
func PlanetOrbits() []PlanetOrbit {
	out := make([]PlanetOrbit, len(planetOrbits))
	copy(out, planetOrbits)
	return out
}

// FindPlanetOrbit looks up a planet's orbit by name (case-insensitive)
func FindPlanetOrbit(name string) (PlanetOrbit, bool) {
	for _, o := range planetOrbits {
		if strings.EqualFold(o.Name, name) {
			return o, true
		}
	}
	return PlanetOrbit{}, false
}

// Params returns the elliptical presentation with the semi-major axis in km
func (o PlanetOrbit) Params() Params {
	return Elliptical(o.SemiMajorAxis*1e6, o.Eccentricity)
}
