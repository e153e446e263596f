package services

import (
	"fmt"
	"math"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/pkg/orbit"
)

// SunRadiusKm is the radius drawn for the Sun at the focus of planet orbits
const SunRadiusKm = 696340.0

// TrajectoryService builds sampled presentation orbits for renderers
type TrajectoryService struct {
	defaults SampleRequest
}

// SampleRequest controls how a trajectory is presented and sampled
type SampleRequest struct {
	Scale        float64 // display units per km
	Eccentricity float64 // flyby eccentricity for asteroids
	Step         float64 // anomaly step in radians
	Session      string
}

// NewTrajectoryService creates a service with defaults for zero request fields
func NewTrajectoryService(defaults SampleRequest) *TrajectoryService {
	if defaults.Scale <= 0 {
		defaults.Scale = 1e-5
	}
	if defaults.Eccentricity <= 1 {
		defaults.Eccentricity = orbit.DefaultFlybyEccentricity
	}
	if defaults.Step <= 0 {
		defaults.Step = 0.01
	}
	return &TrajectoryService{defaults: defaults}
}

func (s *TrajectoryService) resolve(req SampleRequest) SampleRequest {
	if req.Scale <= 0 {
		req.Scale = s.defaults.Scale
	}
	if req.Eccentricity <= 1 {
		req.Eccentricity = s.defaults.Eccentricity
	}
	if req.Step <= 0 {
		req.Step = s.defaults.Step
	}
	if req.Session == "" {
		req.Session = s.defaults.Session
	}
	return req
}

// ForAsteroid presents a close approach as a hyperbolic flyby around Earth.
// The semi-major axis comes from the display transform of the miss distance;
// the asteroid itself is not modified.
func (s *TrajectoryService) ForAsteroid(a domain.Asteroid, req SampleRequest) domain.Trajectory {
	req = s.resolve(req)
	p := orbit.HyperbolicWith(a.MissDistanceKm, req.Eccentricity)

	// Stop just short of the asymptotes, where r grows without bound
	limit := p.AnomalyLimit() - 0.05

	return domain.Trajectory{
		Name:           a.Name,
		Kind:           domain.KindAsteroid,
		Params:         p,
		Points:         orbit.Sample(p, -limit, limit, req.Step, req.Scale),
		Scale:          req.Scale,
		Session:        req.Session,
		CentralBody:    "Earth",
		CentralRadius:  orbit.EarthRadiusKm * req.Scale,
		MissDistanceKm: a.MissDistanceKm,
	}
}

// ForPlanet presents a catalog planet on its heliocentric ellipse
func (s *TrajectoryService) ForPlanet(name string, req SampleRequest) (domain.Trajectory, error) {
	planet, ok := domain.FindPlanet(name)
	if !ok {
		return domain.Trajectory{}, fmt.Errorf("unknown planet %q: %w", name, ErrNotFound)
	}
	o, ok := orbit.FindPlanetOrbit(planet.Name)
	if !ok {
		return domain.Trajectory{}, fmt.Errorf("no orbit for planet %q: %w", name, ErrNotFound)
	}

	req = s.resolve(req)
	p := o.Params()

	return domain.Trajectory{
		Name:          planet.Name,
		Kind:          domain.KindPlanet,
		Params:        p,
		Points:        orbit.Sample(p, -math.Pi, math.Pi, req.Step, req.Scale),
		Scale:         req.Scale,
		Session:       req.Session,
		CentralBody:   "Sun",
		CentralRadius: SunRadiusKm * req.Scale,
	}, nil
}

// Clock returns an animation clock for a trajectory starting at the given
// anomaly in degrees
func (s *TrajectoryService) Clock(t domain.Trajectory, startDeg float64, req SampleRequest) orbit.Clock {
	req = s.resolve(req)
	start := startDeg * math.Pi / 180
	if t.Params.Hyperbolic() && !t.Params.OnBranch(start) {
		start = 0
	}
	return orbit.NewClock(t.Params, start, req.Step)
}
