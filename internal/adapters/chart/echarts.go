// Package chart renders sampled trajectories as standalone HTML documents
// using go-echarts.
package chart

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/ports"
)

const canvasPixels = 900

// EChartsRenderer draws a trajectory as a scatter plot centred on the focus
type EChartsRenderer struct{}

// NewEChartsRenderer creates a new renderer
func NewEChartsRenderer() *EChartsRenderer {
	return &EChartsRenderer{}
}

// Ensure it implements the interface
var _ ports.ChartRenderer = (*EChartsRenderer)(nil)

// Render writes the chart page to w
func (r *EChartsRenderer) Render(ctx context.Context, t domain.Trajectory, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(t.Points) == 0 {
		return fmt.Errorf("trajectory %q has no points to draw", t.Name)
	}

	bound := extent(t)
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "neo: " + t.Name,
			Width:     fmt.Sprintf("%dpx", canvasPixels),
			Height:    fmt.Sprintf("%dpx", canvasPixels),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    t.Name,
			Subtitle: subtitle(t),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value", Min: -bound, Max: bound}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value", Min: -bound, Max: bound}),
	)

	path := make([]opts.ScatterData, 0, len(t.Points))
	for _, p := range t.Points {
		path = append(path, opts.ScatterData{Value: []float64{round(p.X), round(p.Y)}, SymbolSize: 3})
	}
	scatter.AddSeries("trajectory", path)

	central := t.CentralBody
	if central == "" {
		central = "focus"
	}
	scatter.AddSeries(central, []opts.ScatterData{{
		Name:       central,
		Value:      []float64{0, 0},
		SymbolSize: bodyPixels(t.CentralRadius, bound),
	}})

	return scatter.Render(w)
}

// extent returns a symmetric axis bound that contains every point and the
// central body
func extent(t domain.Trajectory) float64 {
	bound := t.CentralRadius
	for _, p := range t.Points {
		bound = math.Max(bound, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if bound == 0 {
		return 1
	}
	return round(bound * 1.1)
}

func bodyPixels(radius, bound float64) int {
	px := int(canvasPixels * radius / (2 * bound))
	if px < 8 {
		return 8
	}
	return px
}

func subtitle(t domain.Trajectory) string {
	s := fmt.Sprintf("%s  a=%.0f km  e=%.3f  scale=%g", t.Kind, t.Params.SemiMajorAxis, t.Params.Eccentricity, t.Scale)
	if t.MissDistanceKm > 0 {
		s += fmt.Sprintf("  miss=%.0f km", t.MissDistanceKm)
	}
	if t.Session != "" {
		s += "  session " + t.Session
	}
	return s
}

func round(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
