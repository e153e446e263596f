package domain

import (
	"regexp"
	"strings"

	"github.com/kamal-hamza/neo-cli/pkg/physics"
)

// Kind tags the variant of a SpaceBody
type Kind string

const (
	KindPlanet   Kind = "planet"
	KindAsteroid Kind = "asteroid"
)

// SpaceBody holds the fields shared by every modelled body
type SpaceBody struct {
	Name       string  `json:"name"`
	DiameterKm float64 `json:"diameterKm"`
	MassKg     float64 `json:"massKg"`
}

// SurfaceGravity returns the gravitational acceleration at the surface in m/s²
func (b SpaceBody) SurfaceGravity() (float64, error) {
	return physics.SurfaceGravity(b.MassKg, b.DiameterKm)
}

// EscapeVelocityKmPerS returns the escape velocity at the surface in km/s
func (b SpaceBody) EscapeVelocityKmPerS() (float64, error) {
	return physics.EscapeVelocityKmPerS(b.MassKg, b.DiameterKm)
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// GenerateSlug creates a filesystem-friendly slug from a body name
// Converts "(2024 AB1) & Eros" -> "2024-ab1-eros"
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = slugInvalid.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return slugDashes.ReplaceAllString(slug, "-")
}
