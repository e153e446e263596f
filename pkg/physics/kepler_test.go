package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerihelionAphelion(t *testing.T) {
	q, err := Perihelion(2.0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, q)

	Q, err := Aphelion(2.0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 3.0, Q)
}

func TestPerihelionAphelion_Invalid(t *testing.T) {
	_, err := Perihelion(-1.0, 0.5)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Aphelion(2.0, 1.5)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Aphelion(2.0, -0.1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestPerihelionVelocity(t *testing.T) {
	v, err := PerihelionVelocityKmPerS(1.5, 0)
	require.NoError(t, err)
	assert.Greater(t, v, 0.0)

	// Earth-like circular orbit moves at roughly 29.8 km/s.
	earth, err := PerihelionVelocityKmPerS(1.0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 29.78, earth, 0.05)

	_, err = PerihelionVelocityKmPerS(-1.5, 0.1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestIntersectsEarthOrbit(t *testing.T) {
	crosses, err := IntersectsEarthOrbit(0.1, 1.0)
	require.NoError(t, err)
	assert.True(t, crosses)

	crosses, err = IntersectsEarthOrbit(1.2, 3.0)
	require.NoError(t, err)
	assert.False(t, crosses)

	_, err = IntersectsEarthOrbit(-1.0, 1.0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = IntersectsEarthOrbit(2.0, 1.0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestMissDistanceAU(t *testing.T) {
	au, err := MissDistanceAU(AUKm * 0.002)
	require.NoError(t, err)
	assert.InDelta(t, 0.002, au, 1e-12)

	_, err = MissDistanceAU(-0.1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
