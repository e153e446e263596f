package cmd

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/neo-cli/internal/core/services"
	"github.com/kamal-hamza/neo-cli/pkg/physics"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
	"github.com/kamal-hamza/neo-cli/pkg/workspace"
)

var watchQuiet bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Summarize every feed as it lands in the cache",
	Long: `Watch the feed cache and rebuild the catalog of a date whenever its
feed file is written, for example by 'neo fetch' in another terminal.

Press Ctrl+C to stop.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Only print summaries")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(appWorkspace.CachePath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", appWorkspace.CachePath, err)
	}

	if !watchQuiet {
		fmt.Println(ui.FormatRocket("Watching " + appWorkspace.CachePath))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	var (
		mu      sync.Mutex
		pending = map[string]bool{}
		timer   *time.Timer
	)
	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond

	rebuild := func() {
		mu.Lock()
		dates := make([]string, 0, len(pending))
		for d := range pending {
			dates = append(dates, d)
		}
		clear(pending)
		mu.Unlock()
		slices.Sort(dates)

		for _, date := range dates {
			resp, err := catalogService.Execute(ctx, services.CatalogRequest{
				Feed:   services.FeedRequest{Date: date, Offline: true},
				SortBy: "energy",
			})
			if err != nil {
				fmt.Println(ui.FormatError(date + ": " + err.Error()))
				logger.Warn("watch rebuild failed", zap.String("date", date), zap.Error(err))
				continue
			}
			fmt.Println(summarizeCatalog(date, resp))
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			date, ok := workspace.DateFromCacheFile(event.Name)
			if !ok {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			mu.Lock()
			pending[date] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, rebuild)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-ctx.Done():
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watch stopped"))
			}
			return nil
		}
	}
}

// summarizeCatalog renders one line per rebuilt date
func summarizeCatalog(date string, resp *services.CatalogResponse) string {
	hazardous := 0
	for _, e := range resp.Entries {
		if e.Report.IsHazardous {
			hazardous++
		}
	}

	line := fmt.Sprintf("%s  %d asteroids, %d hazardous", date, len(resp.Entries), hazardous)
	if len(resp.Skipped) > 0 {
		line += fmt.Sprintf(", %d skipped", len(resp.Skipped))
	}
	if len(resp.Entries) > 0 {
		top := resp.Entries[0].Report
		line += fmt.Sprintf(", largest impact %s (%s)", top.Name, physics.TNTEquivalent(top.ImpactEnergyMegatons))
	}
	if hazardous > 0 {
		return ui.FormatWarning(line)
	}
	return ui.FormatSuccess(line)
}
