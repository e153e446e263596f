package domain

import "github.com/kamal-hamza/neo-cli/pkg/orbit"

// Trajectory is a sampled presentation orbit ready for a renderer
type Trajectory struct {
	Name    string
	Kind    Kind
	Params  orbit.Params
	Points  []orbit.Point
	Scale   float64
	Session string

	// Body at the focus of the conic and its drawn radius in display units
	CentralBody   string
	CentralRadius float64

	// MissDistanceKm is the physical miss distance for asteroid trajectories;
	// the semi-major axis in Params is derived from a display copy of it.
	MissDistanceKm float64
}
