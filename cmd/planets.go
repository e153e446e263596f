package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/pkg/orbit"
	"github.com/kamal-hamza/neo-cli/pkg/physics"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
)

// planetsCmd represents the planets command
var planetsCmd = &cobra.Command{
	Use:   "planets [name]",
	Short: "List the planet catalog or show one planet",
	Long: `List the eight planets with their physical constants, or show the
derived quantities and heliocentric orbit of one planet.

Examples:
  neo planets
  neo planets mars`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlanets,
}

func runPlanets(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return showPlanet(args[0])
	}

	fmt.Println(ui.FormatTitle(ui.IconPlanet + " Planets"))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name"},
		{Header: "Diameter km", Align: "right"},
		{Header: "Mass kg", Align: "right"},
		{Header: "Gravity m/s²", Align: "right"},
		{Header: "Escape km/s", Align: "right"},
		{Header: "a (AU)", Align: "right"},
		{Header: "e", Align: "right"},
	})

	for _, p := range domain.Planets() {
		gravity, err := p.SurfaceGravity()
		if err != nil {
			return err
		}
		escape, err := p.EscapeVelocityKmPerS()
		if err != nil {
			return err
		}
		aAU, ecc := "-", "-"
		if o, ok := orbit.FindPlanetOrbit(p.Name); ok {
			aAU = ui.FormatQuantity(o.SemiMajorAxis*1e6/physics.AUKm, "")
			ecc = ui.FormatQuantity(o.Eccentricity, "")
		}
		table.AddRow([]string{
			p.Name,
			ui.FormatQuantity(p.DiameterKm, ""),
			ui.FormatQuantity(p.MassKg, ""),
			ui.FormatQuantity(gravity, ""),
			ui.FormatQuantity(escape, ""),
			aAU,
			ecc,
		})
	}

	fmt.Print(table.Render())
	return nil
}

func showPlanet(name string) error {
	p, ok := domain.FindPlanet(name)
	if !ok {
		return fmt.Errorf("unknown planet %q", name)
	}

	gravity, err := p.SurfaceGravity()
	if err != nil {
		return err
	}
	escape, err := p.EscapeVelocityKmPerS()
	if err != nil {
		return err
	}

	fmt.Println(ui.FormatTitle(ui.IconPlanet + " " + p.Name))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Diameter", ui.FormatQuantity(p.DiameterKm, "km")))
	fmt.Println(ui.RenderKeyValue("Mass", ui.FormatQuantity(p.MassKg, "kg")))
	fmt.Println(ui.RenderKeyValue("Surface gravity", ui.FormatQuantity(gravity, "m/s²")))
	fmt.Println(ui.RenderKeyValue("Escape velocity", ui.FormatQuantity(escape, "km/s")))

	o, ok := orbit.FindPlanetOrbit(p.Name)
	if !ok {
		return nil
	}

	aAU := o.SemiMajorAxis * 1e6 / physics.AUKm
	q, err := physics.Perihelion(aAU, o.Eccentricity)
	if err != nil {
		return err
	}
	aph, err := physics.Aphelion(aAU, o.Eccentricity)
	if err != nil {
		return err
	}
	vPeri, err := physics.PerihelionVelocityKmPerS(aAU, o.Eccentricity)
	if err != nil {
		return err
	}
	crosses, err := physics.IntersectsEarthOrbit(q, aph)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.FormatInfo("Heliocentric orbit"))
	fmt.Println(ui.RenderKeyValue("Semi-major axis", ui.FormatQuantity(aAU, "AU")))
	fmt.Println(ui.RenderKeyValue("Eccentricity", ui.FormatQuantity(o.Eccentricity, "")))
	fmt.Println(ui.RenderKeyValue("Perihelion", ui.FormatQuantity(q, "AU")))
	fmt.Println(ui.RenderKeyValue("Aphelion", ui.FormatQuantity(aph, "AU")))
	fmt.Println(ui.RenderKeyValue("Perihelion speed", ui.FormatQuantity(vPeri, "km/s")))
	fmt.Println(ui.RenderKeyValue("Period", fmt.Sprintf("%s days (%s years)",
		ui.FormatQuantity(o.PeriodDays, ""), ui.FormatQuantity(o.PeriodDays/365.25, ""))))
	fmt.Println(ui.RenderKeyValue("Crosses 1 AU", fmt.Sprintf("%v", crosses)))

	return nil
}
