package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/neo-cli/internal/core/services"
	"github.com/kamal-hamza/neo-cli/pkg/physics"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
)

var (
	listFeed      feedFlags
	listHazardous bool
	listSortBy    string
	listReverse   bool
	listLimit     int
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the asteroids of a feed with derived quantities",
	Aliases: []string{"ls"},
	Long: `List every asteroid of a day's feed in a table, with mass and impact
energy derived from its size. Malformed records are reported and skipped.

Sort keys: name, size, velocity, distance, energy, date.

Examples:
  neo list
  neo list --date 2024-01-01 --hazardous
  neo list --sort velocity --reverse --limit 10
  neo list --file feed.json`,
	RunE: runList,
}

func init() {
	listFeed.register(listCmd)
	listCmd.Flags().BoolVar(&listHazardous, "hazardous", false, "Only potentially hazardous asteroids")
	// Sort and reverse default to the config, handled in runList
	listCmd.Flags().StringVarP(&listSortBy, "sort", "s", "energy", "Sort by field ("+strings.Join(services.SortKeys, ", ")+")")
	listCmd.Flags().BoolVarP(&listReverse, "reverse", "r", false, "Reverse sort order")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Show at most n asteroids")
}

func runList(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("sort") {
		listSortBy = appConfig.DefaultSort
	}
	if !cmd.Flags().Changed("reverse") {
		listReverse = appConfig.ReverseSort
	}
	if !cmd.Flags().Changed("hazardous") {
		listHazardous = appConfig.HazardousOnly
	}

	req := services.CatalogRequest{
		Feed:          listFeed.request(),
		HazardousOnly: listHazardous,
		SortBy:        listSortBy,
		Reverse:       listReverse,
		Limit:         listLimit,
	}

	ctx := getContext(cmd)
	resp, err := catalogService.Execute(ctx, req)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list asteroids"))
		return err
	}
	reportFeedIssues(resp)

	if len(resp.Entries) == 0 {
		if listHazardous {
			fmt.Println(ui.FormatWarning("No hazardous asteroids found"))
		} else {
			fmt.Println(ui.FormatWarning("No asteroids found"))
		}
		return nil
	}

	title := "Close approaches " + req.Feed.Date
	if listFeed.file != "" {
		title = "Close approaches from " + listFeed.file
	}
	fmt.Println(ui.FormatTitle(title))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "#", Align: "right"},
		{Header: "Name", MaxWidth: 28},
		{Header: "Date", Width: 10},
		{Header: "Diameter km", Align: "right"},
		{Header: "km/s", Align: "right"},
		{Header: "Miss AU", Align: "right"},
		{Header: "Mass kg", Align: "right"},
		{Header: "Impact", Align: "right"},
		{Header: "Hazard", Align: "center"},
	})

	for i, e := range resp.Entries {
		r := e.Report
		missAU := "-"
		if au, err := physics.MissDistanceAU(r.MissDistanceKm); err == nil {
			missAU = ui.FormatQuantity(au, "")
		}
		hazard := ""
		if r.IsHazardous {
			hazard = ui.StyleHazard.Render(ui.IconHazard)
		}
		table.AddRow([]string{
			fmt.Sprintf("%d", i+1),
			r.Name,
			r.CloseApproachDate,
			ui.FormatQuantity(r.MaxDiameterKm, ""),
			ui.FormatQuantity(r.RelativeVelocityKmPerS, ""),
			missAU,
			ui.FormatQuantity(r.MassKg, ""),
			physics.TNTEquivalent(r.ImpactEnergyMegatons),
			hazard,
		})
	}

	fmt.Print(table.Render())
	fmt.Println()

	summary := fmt.Sprintf("Showing %d of %d asteroids (source: %s)", len(resp.Entries), resp.Total, resp.Source)
	if len(resp.Skipped) > 0 {
		summary += fmt.Sprintf(", %d skipped", len(resp.Skipped))
	}
	fmt.Println(ui.FormatMuted(summary))

	return nil
}
