package ui

import (
	"math"
	"strings"
)

// CellAspect is the height-to-width ratio of a terminal cell
const CellAspect = 2.0

// Projection maps orbital-plane coordinates onto a grid of terminal cells
// with the focus of the orbit at the centre. Extent is the largest |x| or
// |y| that still fits.
type Projection struct {
	Width  int
	Height int
	Extent float64
}

// NewProjection sizes a projection so that every given point fits
func NewProjection(width, height int, xs, ys []float64, minExtent float64) Projection {
	extent := minExtent
	for _, x := range xs {
		extent = math.Max(extent, math.Abs(x))
	}
	for _, y := range ys {
		extent = math.Max(extent, math.Abs(y))
	}
	if extent <= 0 || math.IsInf(extent, 0) || math.IsNaN(extent) {
		extent = 1
	}
	return Projection{Width: width, Height: height, Extent: extent * 1.05}
}

// unitsPerColumn is the world distance covered by one column
func (p Projection) unitsPerColumn() float64 {
	cols := float64(p.Width) / 2
	rows := float64(p.Height) / 2 * CellAspect
	return p.Extent / math.Max(1, math.Min(cols, rows))
}

// Cell returns the column and row of a world point and whether it is visible
func (p Projection) Cell(x, y float64) (int, int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	u := p.unitsPerColumn()
	col := int(math.Round(float64(p.Width)/2 + x/u))
	row := int(math.Round(float64(p.Height)/2 - y/(u*CellAspect)))
	if col < 0 || col >= p.Width || row < 0 || row >= p.Height {
		return col, row, false
	}
	return col, row, true
}

// RadiusCells converts a world radius to columns, never less than one
func (p Projection) RadiusCells(r float64) int {
	return max(1, int(math.Round(r/p.unitsPerColumn())))
}

// Canvas is a plain rune grid drawn through a Projection
type Canvas struct {
	proj  Projection
	cells [][]rune
}

// NewCanvas creates a blank canvas
func NewCanvas(proj Projection) *Canvas {
	cells := make([][]rune, max(0, proj.Height))
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", max(0, proj.Width)))
	}
	return &Canvas{proj: proj, cells: cells}
}

// Plot sets the cell under a world point; points off the canvas are ignored
func (c *Canvas) Plot(x, y float64, r rune) {
	if col, row, ok := c.proj.Cell(x, y); ok {
		c.cells[row][col] = r
	}
}

// Disc fills a circle of world radius r around a world point
func (c *Canvas) Disc(x, y, radius float64, r rune) {
	col, row, _ := c.proj.Cell(x, y)
	rc := c.proj.RadiusCells(radius)
	for dy := -rc; dy <= rc; dy++ {
		for dx := -rc; dx <= rc; dx++ {
			// Rows are twice as tall as columns are wide
			fy := float64(dy) * CellAspect
			if float64(dx*dx)+fy*fy > float64(rc*rc) {
				continue
			}
			cc, rr := col+dx, row+dy
			if rr >= 0 && rr < len(c.cells) && cc >= 0 && cc < len(c.cells[rr]) {
				c.cells[rr][cc] = r
			}
		}
	}
}

// String renders the canvas as newline separated rows
func (c *Canvas) String() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
