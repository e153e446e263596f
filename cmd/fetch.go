package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/neo-cli/internal/core/services"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
)

var (
	fetchDate       string
	fetchEnd        string
	fetchJobs       int
	fetchClearCache bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and cache the NeoWs feed for a date range",
	Long: `Fetch the NASA NeoWs close-approach feed for every day of a range and
cache one file per day, so later commands can work offline.

Days are fetched concurrently by a pool of workers.

Examples:
  neo fetch
  neo fetch --date 2024-01-01
  neo fetch --date 2024-01-01 --end 2024-01-31 --jobs 8`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchDate, "date", "d", "", "First date (YYYY-MM-DD, default today)")
	fetchCmd.Flags().StringVarP(&fetchEnd, "end", "e", "", "Last date (default: same as --date)")
	fetchCmd.Flags().IntVarP(&fetchJobs, "jobs", "j", 0, "Number of concurrent workers (default from config)")
	fetchCmd.Flags().BoolVar(&fetchClearCache, "clear-cache", false, "Remove every cached feed before fetching")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)

	if offline {
		return fmt.Errorf("fetch needs the network, remove --offline")
	}

	if fetchClearCache {
		if err := appWorkspace.CleanCache(); err != nil {
			fmt.Println(ui.FormatError("Failed to clear cache"))
			return err
		}
		fmt.Println(ui.FormatSuccess("Cache cleared"))
	}

	start := fetchDate
	if start == "" {
		start = services.Today()
	}
	jobs := fetchJobs
	if jobs <= 0 {
		jobs = appConfig.MaxWorkers
	}

	fmt.Println(ui.FormatRocket("Fetching close approaches..."))
	fmt.Println()
	end := fetchEnd
	if end == "" {
		end = start
	}
	fmt.Println(ui.RenderKeyValue("Range", start+" .. "+end))
	fmt.Println(ui.RenderKeyValue("Workers", fmt.Sprintf("%d", jobs)))
	if !appConfig.HasAPIKey() {
		fmt.Println(ui.FormatWarning("Using DEMO_KEY, requests are heavily rate limited"))
	}
	fmt.Println()

	progressChan := make(chan services.FetchProgress, 8)
	resultChan := make(chan *services.FetchRangeResponse, 1)
	errorChan := make(chan error, 1)

	go func() {
		req := services.FetchRangeRequest{
			StartDate:  start,
			EndDate:    fetchEnd,
			MaxWorkers: jobs,
		}
		resp, err := feedService.FetchRangeWithProgress(ctx, req, progressChan)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- resp
	}()

	for progress := range progressChan {
		status := ui.FormatSuccess("✓")
		if !progress.Result.Success {
			status = ui.FormatError("✗")
		}

		percentage := float64(progress.Current) / float64(progress.Total) * 100
		fmt.Printf("\r%s [%d/%d] %s %s",
			createProgressBar(percentage, 30),
			progress.Current,
			progress.Total,
			status,
			progress.Result.Date,
		)
	}

	var response *services.FetchRangeResponse
	select {
	case err := <-errorChan:
		fmt.Println()
		fmt.Println(ui.FormatError("Fetch failed"))
		return err
	case response = <-resultChan:
	}

	fmt.Println()
	fmt.Println()

	total := 0
	for _, r := range response.Results {
		total += r.Count
	}

	fmt.Println(ui.FormatSuccess("Fetch completed!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Days", fmt.Sprintf("%d", response.Total)))
	fmt.Println(ui.RenderKeyValue("Succeeded", ui.StyleSuccess.Render(fmt.Sprintf("%d", response.Succeeded))))
	fmt.Println(ui.RenderKeyValue("Records", fmt.Sprintf("%d", total)))
	if response.Failed > 0 {
		fmt.Println(ui.RenderKeyValue("Failed", ui.StyleError.Render(fmt.Sprintf("%d", response.Failed))))
		fmt.Println()
		fmt.Println(ui.FormatWarning("Failed days:"))
		for _, result := range response.Results {
			if !result.Success {
				fmt.Println(ui.FormatMuted("  • " + result.Date + ": " + result.Error.Error()))
			}
		}
		return fmt.Errorf("%d of %d days failed", response.Failed, response.Total)
	}

	return nil
}

// createProgressBar creates an ASCII progress bar
func createProgressBar(percentage float64, width int) string {
	filled := min(int(percentage/100.0*float64(width)), width)
	bar := strings.Repeat("█", max(0, filled)) + strings.Repeat("░", width-max(0, filled))
	return ui.StyleAccent.Render(bar)
}
