package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/neo-cli/pkg/config"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
	"github.com/kamal-hamza/neo-cli/pkg/workspace"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the neo workspace",
	Long: `Initialize the neo workspace directory structure.

This creates the managed workspace at ~/.local/share/neo/ with the following structure:
  - cache/    : Fetched NeoWs feeds, one JSON file per date
  - exports/  : CSV reports
  - charts/   : HTML trajectory charts
  - logs/     : Structured logs

and writes a default config.yaml when none exists.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	ws, err := workspace.New()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine workspace location"))
		return err
	}

	if ws.Exists() {
		fmt.Println(ui.FormatWarning("Workspace already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + ws.RootPath))
		return nil
	}

	fmt.Println(ui.FormatRocket("Initializing neo workspace..."))
	fmt.Println()

	if err := ws.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to initialize workspace"))
		return err
	}

	if created, err := createDefaultConfig(ws); err != nil {
		// The defaults apply without a file
		fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
	} else if created {
		fmt.Println(ui.FormatSuccess("Default config created"))
	}

	fmt.Println(ui.FormatSuccess("Workspace initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Location", ws.RootPath))
	fmt.Println(ui.RenderKeyValue("Config", ws.ConfigPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Set api_key in the config, or NEO_API_KEY in " + ws.EnvFile()))
	fmt.Println(ui.FormatMuted("  2. Fetch today's feed: neo fetch"))
	fmt.Println(ui.FormatMuted("  3. List the asteroids: neo list"))

	return nil
}

// createDefaultConfig writes the default config unless one exists
func createDefaultConfig(ws *workspace.Workspace) (bool, error) {
	if _, err := os.Stat(ws.ConfigPath); err == nil {
		return false, nil
	}
	if err := config.DefaultConfig().Save(ws.ConfigPath); err != nil {
		return false, err
	}
	return true, nil
}
