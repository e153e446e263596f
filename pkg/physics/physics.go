// Package physics holds the pure formulas used to derive physical quantities
// of space bodies. Every function is referentially transparent and rejects
// non-physical input with ErrInvalidParameter instead of returning NaN or zero.
package physics

import (
	"errors"
	"fmt"
	"math"
)

// Physical constants
const (
	G                     = 6.67430e-11      // Gravitational constant (m^3 kg^-1 s^-2)
	DefaultDensityKgPerM3 = 3000.0           // Assumed bulk density of a rocky asteroid
	JoulesPerMegatonTNT   = 4.184e15         // Energy released by one megaton of TNT
	AUKm                  = 149597870.7      // Astronomical unit in kilometers
	SunGM                 = 1.32712440018e20 // Standard gravitational parameter of the Sun (m^3 s^-2)
)

// ErrInvalidParameter is returned when a derivation receives a non-positive
// diameter, mass, radius or density, or an otherwise non-physical value.
var ErrInvalidParameter = errors.New("invalid parameter")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func checkPositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return invalid("%s must be positive, got %v", name, v)
	}
	return nil
}

func checkNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return invalid("%s must not be negative, got %v", name, v)
	}
	return nil
}

// radiusMeters converts a diameter in kilometers to a radius in meters
func radiusMeters(diameterKm float64) float64 {
	return diameterKm * 1000 / 2
}

// SurfaceGravity returns the surface gravity in m/s^2 of a sphere with the
// given mass and diameter: G*M/r^2.
func SurfaceGravity(massKg, diameterKm float64) (float64, error) {
	if err := checkPositive("diameter", diameterKm); err != nil {
		return 0, err
	}
	if err := checkPositive("mass", massKg); err != nil {
		return 0, err
	}

	r := radiusMeters(diameterKm)
	return G * massKg / (r * r), nil
}

// EscapeVelocityKmPerS returns sqrt(2GM/r) converted to km/s.
func EscapeVelocityKmPerS(massKg, diameterKm float64) (float64, error) {
	if err := checkPositive("diameter", diameterKm); err != nil {
		return 0, err
	}
	if err := checkPositive("mass", massKg); err != nil {
		return 0, err
	}

	r := radiusMeters(diameterKm)
	return math.Sqrt(2*G*massKg/r) / 1000, nil
}

// sphereVolume returns the volume in m^3 of a sphere with the given diameter in km
func sphereVolume(diameterKm float64) float64 {
	r := radiusMeters(diameterKm)
	return (4.0 / 3.0) * math.Pi * r * r * r
}

// EstimateAsteroidMassKg estimates the mass of an asteroid from its estimated
// diameter bounds. The volumes of the smallest and largest spheres are
// averaged and multiplied by the density. This is intentionally not the
// volume of the mean diameter; the two differ and downstream impact energy
// depends on this exact rule.
func EstimateAsteroidMassKg(minDiameterKm, maxDiameterKm, densityKgPerM3 float64) (float64, error) {
	if err := checkPositive("minimum diameter", minDiameterKm); err != nil {
		return 0, err
	}
	if err := checkPositive("maximum diameter", maxDiameterKm); err != nil {
		return 0, err
	}
	if err := checkPositive("density", densityKgPerM3); err != nil {
		return 0, err
	}
	if minDiameterKm > maxDiameterKm {
		return 0, invalid("minimum diameter %v exceeds maximum diameter %v", minDiameterKm, maxDiameterKm)
	}

	avgVolume := (sphereVolume(minDiameterKm) + sphereVolume(maxDiameterKm)) / 2
	return densityKgPerM3 * avgVolume, nil
}

// ImpactEnergyMegatonsTNT returns the kinetic energy of a body striking at
// the given relative velocity, expressed in megatons of TNT.
func ImpactEnergyMegatonsTNT(massKg, velocityKmPerS float64) (float64, error) {
	if err := checkPositive("mass", massKg); err != nil {
		return 0, err
	}
	if err := checkNonNegative("velocity", velocityKmPerS); err != nil {
		return 0, err
	}

	v := velocityKmPerS * 1000
	return 0.5 * massKg * v * v / JoulesPerMegatonTNT, nil
}

// KineticEnergyJoules returns 1/2 m v^2 for a velocity in m/s.
func KineticEnergyJoules(massKg, velocityMPerS float64) (float64, error) {
	if err := checkPositive("mass", massKg); err != nil {
		return 0, err
	}
	if err := checkNonNegative("velocity", velocityMPerS); err != nil {
		return 0, err
	}
	return 0.5 * massKg * velocityMPerS * velocityMPerS, nil
}

// TNTEquivalent renders an energy in megatons on a human scale
func TNTEquivalent(megatons float64) string {
	switch {
	case megatons <= 0 || math.IsNaN(megatons):
		return "0 t"
	case megatons < 1e-3:
		return fmt.Sprintf("%.1f t", megatons*1e6)
	case megatons < 1:
		return fmt.Sprintf("%.1f kilotons", megatons*1e3)
	case megatons < 1e3:
		return fmt.Sprintf("%.1f megatons", megatons)
	default:
		return fmt.Sprintf("%.1f gigatons", megatons/1e3)
	}
}
