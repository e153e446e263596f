package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/services"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
)

var (
	mergeFeed   feedFlags
	mergeExport string
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge [first] [second]",
	Short: "Merge two asteroids into one body",
	Long: `Combine two asteroids of a feed into a single body. Diameters, mass,
velocity and miss distance are summed; the hazard flag is recomputed from
the combined size and velocity. The id and JPL URL come from the first body.

Without arguments both bodies are picked interactively.

Examples:
  neo merge apophis bennu
  neo merge 2099942 101955 --export merged.csv`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected two asteroids or none, got %d", len(args))
		}
		return nil
	},
	RunE: runMerge,
}

func init() {
	mergeFeed.register(mergeCmd)
	mergeCmd.Flags().StringVarP(&mergeExport, "export", "o", "", "Append the merged body to a CSV file (relative to the exports directory)")
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)

	var resp *services.MergeResponse
	if len(args) == 2 {
		r, err := mergeService.Execute(ctx, services.MergeRequest{
			Feed:   mergeFeed.request(),
			First:  args[0],
			Second: args[1],
		})
		if err != nil {
			fmt.Println(ui.FormatError("Failed to merge asteroids"))
			return err
		}
		resp = r
	} else {
		catalog, err := catalogService.Execute(ctx, services.CatalogRequest{
			Feed:   mergeFeed.request(),
			SortBy: "name",
		})
		if err != nil {
			fmt.Println(ui.FormatError("Failed to load asteroids"))
			return err
		}
		reportFeedIssues(catalog)

		first, err := selectEntry(catalog.Entries, "", 0)
		if err != nil {
			return err
		}
		second, err := selectEntry(catalog.Entries, "", 0)
		if err != nil {
			return err
		}
		if resp, err = mergeService.Merge(first.Asteroid, second.Asteroid); err != nil {
			return err
		}
	}

	fmt.Println(ui.FormatTitle(ui.IconAsteroid + " " + resp.Report.Name))
	fmt.Println()
	fmt.Print(reportDetails(resp.Report))
	if resp.Merged.IsHazardous && !resp.First.IsHazardous && !resp.Second.IsHazardous {
		fmt.Println()
		fmt.Println(ui.FormatWarning("The merged body is hazardous although neither operand was"))
	}

	if mergeExport == "" {
		return nil
	}

	path := exportTarget(mergeExport)
	if err := exportService.WriteReports(ctx, path, []domain.Report{resp.Report}, appConfig.ExportEscapeVelocity); err != nil {
		fmt.Println(ui.FormatError("Failed to export merged body"))
		return err
	}
	fmt.Println()
	fmt.Println(ui.FormatSuccess("Merged body appended to " + path))
	return nil
}
