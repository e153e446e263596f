package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/ports"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
)

var (
	chartFeed   feedFlags
	chartPlanet string
	chartOpen   bool
)

// chartCmd represents the chart command
var chartCmd = &cobra.Command{
	Use:   "chart [query]",
	Short: "Write an HTML chart of a trajectory",
	Long: `Render the sampled trajectory of an asteroid flyby or a planetary
orbit as a standalone HTML chart in the charts directory.

Examples:
  neo chart apophis --open
  neo chart --planet jupiter`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChart,
}

func init() {
	chartFeed.register(chartCmd)
	chartCmd.Flags().StringVarP(&chartPlanet, "planet", "p", "", "Chart a planet instead of an asteroid")
	chartCmd.Flags().BoolVar(&chartOpen, "open", false, "Open the chart in the default browser")
	chartCmd.Flags().IntVar(&pickIndex, "pick", 0, "Select the n-th asteroid of the list instead of prompting")
}

func runChart(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)

	t, err := resolveTrajectory(ctx, chartFeed, chartPlanet, args)
	if err != nil {
		return err
	}

	path := appWorkspace.ChartPath(domain.GenerateSlug(t.Name))
	if err := writeChart(ctx, chartRenderer, t, path); err != nil {
		fmt.Println(ui.FormatError("Failed to render chart"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Chart written"))
	fmt.Println(ui.RenderKeyValue("File", path))
	fmt.Println(ui.RenderKeyValue("Points", fmt.Sprintf("%d", len(t.Points))))

	if chartOpen {
		return OpenFile(path)
	}
	return nil
}

// writeChart renders a trajectory into the file at path
func writeChart(ctx context.Context, renderer ports.ChartRenderer, t domain.Trajectory, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := renderer.Render(ctx, t, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}
	return nil
}
