package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/neo-cli/internal/core/services"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
)

var (
	showFeed feedFlags
	showCopy bool
	showRaw  bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [query]",
	Short: "Show every derived quantity of one asteroid",
	Long: `Show the mass, surface gravity, escape velocity and impact energy of an
asteroid. The query matches an id, a name or a fuzzy name; without a query
an interactive finder opens.

Examples:
  neo show apophis
  neo show 2099942 --copy
  neo show --pick 3 --raw`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showFeed.register(showCmd)
	showCmd.Flags().IntVar(&pickIndex, "pick", 0, "Select the n-th asteroid of the list instead of prompting")
	showCmd.Flags().BoolVarP(&showCopy, "copy", "c", false, "Copy the JPL URL to the clipboard")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Also print the source record")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)

	resp, err := catalogService.Execute(ctx, services.CatalogRequest{
		Feed:   showFeed.request(),
		SortBy: appConfig.DefaultSort,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load asteroids"))
		return err
	}
	reportFeedIssues(resp)

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	entry, err := selectEntry(resp.Entries, query, pickIndex)
	if err != nil {
		return err
	}

	fmt.Println(ui.FormatTitle(ui.IconAsteroid + " " + entry.Report.Name))
	fmt.Println()
	fmt.Print(reportDetails(entry.Report))

	if showRaw && len(entry.Raw) > 0 {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, entry.Raw, "", "  "); err != nil {
			pretty.Reset()
			pretty.Write(entry.Raw)
		}
		fmt.Println()
		fmt.Println(highlightJSON(pretty.String()))
	}

	if showCopy {
		if entry.Report.JPLURL == "" {
			fmt.Println(ui.FormatWarning("No JPL URL in the record"))
			return nil
		}
		if err := clipboard.WriteAll(entry.Report.JPLURL); err != nil {
			fmt.Println(ui.FormatWarning("Failed to copy to clipboard: " + err.Error()))
			return nil
		}
		fmt.Println()
		fmt.Println(ui.FormatSuccess("JPL URL copied to clipboard"))
	}

	return nil
}
