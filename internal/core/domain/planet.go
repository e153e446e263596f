package domain

import (
	"fmt"
	"strings"
)

// Planet is a catalog body with fixed physical constants
type Planet struct {
	SpaceBody
}

// Kind returns KindPlanet
func (Planet) Kind() Kind {
	return KindPlanet
}

// NewPlanet validates the literal values of a catalog row
func NewPlanet(name string, diameterKm, massKg float64) (Planet, error) {
	if strings.TrimSpace(name) == "" {
		return Planet{}, fmt.Errorf("%w: planet name cannot be empty", ErrInvalidParameter)
	}
	if !(diameterKm > 0) {
		return Planet{}, fmt.Errorf("%w: diameter must be positive, got %g", ErrInvalidParameter, diameterKm)
	}
	if !(massKg > 0) {
		return Planet{}, fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidParameter, massKg)
	}

	return Planet{SpaceBody: SpaceBody{Name: name, DiameterKm: diameterKm, MassKg: massKg}}, nil
}

// planetRows holds the literal catalog values: name, diameter km, mass kg
var planetRows = []struct {
	name       string
	diameterKm float64
	massKg     float64
}{
	{"Mercury", 4879.4, 3.3011e23},
	{"Venus", 12104, 4.8675e24},
	{"Earth", 12742, 5.97237e24},
	{"Mars", 6779, 6.4171e23},
	{"Jupiter", 139820, 1.8982e27},
	{"Saturn", 116460, 5.6834e26},
	{"Uranus", 50724, 8.6810e25},
	{"Neptune", 49244, 1.02413e26},
}

var planetCatalog = buildCatalog()

func buildCatalog() []Planet {
	out := make([]Planet, len(planetRows))
	for i, row := range planetRows {
		out[i] = mustPlanet(row.name, row.diameterKm, row.massKg)
	}
	return out
}

// mustPlanet is NewPlanet for compile-time literals; a bad row panics at init
func mustPlanet(name string, diameterKm, massKg float64) Planet {
	p, err := NewPlanet(name, diameterKm, massKg)
	if err != nil {
		panic(fmt.Sprintf("planet catalog: %v", err))
	}
	return p
}

// Planets returns a copy of the planet catalog, ordered from the Sun outwards
func Planets() []Planet {
	out := make([]Planet, len(planetCatalog))
	copy(out, planetCatalog)
	return out
}

// FindPlanet looks up a catalog planet by name (case-insensitive)
func FindPlanet(name string) (Planet, bool) {
	name = strings.TrimSpace(name)
	for _, p := range planetCatalog {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Planet{}, false
}
