package cmd

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/services"
	"github.com/kamal-hamza/neo-cli/pkg/orbit"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
)

var (
	orbitFeed   feedFlags
	orbitPlanet string
	orbitSlider bool
)

// orbitCmd represents the orbit command
var orbitCmd = &cobra.Command{
	Use:   "orbit [query]",
	Short: "Animate a flyby or a planetary orbit in the terminal",
	Long: `Animate an asteroid's close approach as a hyperbolic flyby around Earth,
or a planet on its ellipse around the Sun.

Keys:
  space        pause / resume
  left, right  step the body back or forward (pauses)
  home         return to the start position
  q, esc       quit

Examples:
  neo orbit apophis
  neo orbit --planet mars
  neo orbit --pick 1 --slider`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrbit,
}

func init() {
	orbitFeed.register(orbitCmd)
	orbitCmd.Flags().StringVarP(&orbitPlanet, "planet", "p", "", "Animate a planet instead of an asteroid")
	orbitCmd.Flags().BoolVar(&orbitSlider, "slider", false, "Start paused and drive the body with the arrow keys")
	orbitCmd.Flags().IntVar(&pickIndex, "pick", 0, "Select the n-th asteroid of the list instead of prompting")
}

func runOrbit(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)

	t, err := resolveTrajectory(ctx, orbitFeed, orbitPlanet, args)
	if err != nil {
		return err
	}

	clock := trajectoryService.Clock(t, appConfig.StartAnomalyDeg, services.SampleRequest{})
	if orbitSlider {
		clock.Paused = true
	}

	view, err := NewOrbitView(t, clock, appConfig.FPS)
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	return view.Run(ctx)
}

// resolveTrajectory builds the trajectory of a planet, or of the asteroid
// selected from the feed
func resolveTrajectory(ctx context.Context, flags feedFlags, planet string, args []string) (domain.Trajectory, error) {
	if planet != "" {
		return trajectoryService.ForPlanet(planet, services.SampleRequest{})
	}

	resp, err := catalogService.Execute(ctx, services.CatalogRequest{
		Feed:   flags.request(),
		SortBy: appConfig.DefaultSort,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load asteroids"))
		return domain.Trajectory{}, err
	}
	reportFeedIssues(resp)

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	entry, err := selectEntry(resp.Entries, query, pickIndex)
	if err != nil {
		return domain.Trajectory{}, err
	}
	return trajectoryService.ForAsteroid(entry.Asteroid, services.SampleRequest{}), nil
}

// renderOrbitCanvas draws the sampled path, the central body and the body at
// the clock's current anomaly
func renderOrbitCanvas(t domain.Trajectory, clock orbit.Clock, width, height int) *ui.Canvas {
	xs := make([]float64, len(t.Points))
	ys := make([]float64, len(t.Points))
	for i, p := range t.Points {
		xs[i], ys[i] = p.X, p.Y
	}

	proj := ui.NewProjection(width, height, xs, ys, 2*t.CentralRadius)
	canvas := ui.NewCanvas(proj)

	for _, p := range t.Points {
		canvas.Plot(p.X, p.Y, '·')
	}
	canvas.Disc(0, 0, t.CentralRadius, 'O')

	if pos := clock.Position(t.Scale); pos.Finite() {
		canvas.Plot(pos.X, pos.Y, '●')
	}
	return canvas
}

// OrbitView animates a trajectory on a tcell screen
type OrbitView struct {
	trajectory domain.Trajectory
	clock      orbit.Clock
	screen     tcell.Screen
	fps        int
	width      int
	height     int
}

// NewOrbitView creates a new orbit animation on the terminal
func NewOrbitView(t domain.Trajectory, clock orbit.Clock, fps int) (*OrbitView, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}

	width, height := screen.Size()

	return &OrbitView{
		trajectory: t,
		clock:      clock,
		screen:     screen,
		fps:        max(1, fps),
		width:      width,
		height:     height,
	}, nil
}

// Run starts the animation until the user quits or ctx is cancelled
func (v *OrbitView) Run(ctx context.Context) error {
	defer v.screen.Fini()

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			// PollEvent returns nil once the screen is finalized
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(v.fps))
	defer ticker.Stop()

	v.screen.Clear()
	v.render()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			v.clock = v.clock.Tick()
			v.render()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				v.width, v.height = ev.Size()
				v.screen.Sync()
				v.render()

			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}

				v.handleKeyPress(ev)
				v.render()
			}
		}
	}
}

func (v *OrbitView) handleKeyPress(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyLeft:
		v.clock.Paused = true
		v.clock = v.clock.Rewind()
	case tcell.KeyRight:
		v.clock.Paused = true
		v.clock = v.clock.Advance()
	case tcell.KeyHome:
		v.clock = v.clock.Set(v.clock.Start)
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			v.clock = v.clock.TogglePause()
		}
	}
}

func (v *OrbitView) render() {
	v.screen.Clear()

	// Two header rows and one footer row
	canvasHeight := max(1, v.height-3)
	canvas := renderOrbitCanvas(v.trajectory, v.clock, v.width, canvasHeight)

	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorPurple)
	mutedStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	v.drawText(0, 0, fmt.Sprintf("%s around %s", v.trajectory.Name, v.trajectory.CentralBody), titleStyle)
	v.drawText(0, 1, v.status(), mutedStyle)

	y := 2
	for _, line := range strings.Split(canvas.String(), "\n") {
		v.drawText(0, y, line, tcell.StyleDefault)
		y++
	}

	help := "space: pause  ←/→: step  home: reset  q: quit"
	if v.clock.Paused {
		help = "[paused]  " + help
	}
	v.drawText(0, v.height-1, help, mutedStyle)

	v.screen.Show()
}

// status describes the current anomaly and distance from the focus
func (v *OrbitView) status() string {
	deg := v.clock.Anomaly * 180 / math.Pi
	r := v.clock.Position(1).Radius()
	s := fmt.Sprintf("ν = %6.1f°  r = %s km  e = %.3g", deg, ui.FormatQuantity(r, ""), v.trajectory.Params.Eccentricity)
	if v.trajectory.MissDistanceKm > 0 {
		s += "  miss = " + ui.FormatQuantity(v.trajectory.MissDistanceKm, "km")
	}
	return s
}

// drawText draws text at the specified position
func (v *OrbitView) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= v.width {
			break
		}
		v.screen.SetContent(col, y, r, nil, style)
		col++
	}
}
