package chart

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/pkg/orbit"
)

func TestEChartsRenderer_Render(t *testing.T) {
	p := orbit.Hyperbolic(1000000)
	trajectory := domain.Trajectory{
		Name:          "(2010 PK9)",
		Kind:          domain.KindAsteroid,
		Params:        p,
		Points:        orbit.Sample(p, -2, 2, 0.1, 1e-5),
		Scale:         1e-5,
		Session:       "abc-123",
		CentralBody:   "Earth",
		CentralRadius: orbit.EarthRadiusKm * 1e-5,
	}

	var buf bytes.Buffer
	require.NoError(t, NewEChartsRenderer().Render(context.Background(), trajectory, &buf))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "(2010 PK9)")
	assert.Contains(t, html, "trajectory")
	assert.Contains(t, html, "Earth")
	assert.Contains(t, html, "abc-123")
}

func TestEChartsRenderer_EmptyTrajectory(t *testing.T) {
	var buf bytes.Buffer
	err := NewEChartsRenderer().Render(context.Background(), domain.Trajectory{Name: "empty"}, &buf)
	assert.Error(t, err)
}

func TestExtent(t *testing.T) {
	tr := domain.Trajectory{
		Points:        []orbit.Point{{X: 3, Y: -10}, {X: 1, Y: 2}},
		CentralRadius: 0.5,
	}
	assert.InDelta(t, 11, extent(tr), 1e-9)
	assert.Equal(t, 1.0, extent(domain.Trajectory{}))
}

func TestBodyPixels(t *testing.T) {
	assert.Equal(t, 8, bodyPixels(0.001, 100))
	assert.Equal(t, 45, bodyPixels(10, 100))
}
