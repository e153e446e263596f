package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/neo-cli/internal/core/services"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
)

var (
	exportFeed      feedFlags
	exportOut       string
	exportNoEscape  bool
	exportHazardous bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Append the asteroid reports of a feed to a CSV file",
	Long: `Derive every asteroid of a feed and append one CSV row per asteroid.
The header is written only when the file is new or empty, so exports of
several days accumulate in one file.

Columns: id, name, jplUrl, absoluteMagnitudeH, minDiameterKm, maxDiameterKm,
isHazardous, closeApproachDate, relativeVelocityKmPerS, missDistanceKm, massKg,
surfaceGravity, impactEnergyMegatons and, unless --no-escape, escapeVelocity.

Examples:
  neo export
  neo export --date 2024-01-01 --out january.csv
  neo export --hazardous --no-escape --out /tmp/hazards.csv`,
	RunE: runExport,
}

func init() {
	exportFeed.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: exports/neo-<date>.csv)")
	exportCmd.Flags().BoolVar(&exportNoEscape, "no-escape", false, "Omit the escapeVelocity column")
	exportCmd.Flags().BoolVar(&exportHazardous, "hazardous", false, "Only potentially hazardous asteroids")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)

	feed := exportFeed.request()
	out := exportOut
	if out == "" {
		out = "neo-" + feed.Date + ".csv"
	}
	includeEscape := appConfig.ExportEscapeVelocity
	if cmd.Flags().Changed("no-escape") {
		includeEscape = !exportNoEscape
	}

	resp, err := exportService.Execute(ctx, services.ExportRequest{
		Catalog: services.CatalogRequest{
			Feed:          feed,
			HazardousOnly: exportHazardous,
			SortBy:        "date",
		},
		Path:                  exportTarget(out),
		IncludeEscapeVelocity: includeEscape,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Export failed"))
		return err
	}

	if resp.Warning != "" {
		fmt.Println(ui.FormatWarning(resp.Warning))
	}
	for _, sk := range resp.Skipped {
		fmt.Println(ui.FormatWarning("Skipped " + sk.Error()))
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Exported %d asteroids", resp.Written)))
	fmt.Println(ui.RenderKeyValue("File", resp.Path))
	fmt.Println(ui.RenderKeyValue("Source", resp.Source))
	if len(resp.Skipped) > 0 {
		fmt.Println(ui.RenderKeyValue("Skipped", fmt.Sprintf("%d", len(resp.Skipped))))
	}
	return nil
}

// exportTarget resolves bare file names into the exports directory
func exportTarget(out string) string {
	if filepath.IsAbs(out) || filepath.Dir(out) != "." {
		return out
	}
	return appWorkspace.ExportPath(out)
}
