package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/neo-cli/pkg/config"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
)

var (
	configEdit bool
	configPath bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the neo configuration",
	Long: `Print the effective configuration, with the API key masked.

Values are layered as defaults, config.yaml, a .env file next to it and the
process environment (NEO_API_KEY, NEO_API_BASE_URL).

Examples:
  neo config
  neo config --path
  neo config --edit`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVarP(&configEdit, "edit", "e", false, "Open the config file in $EDITOR")
	configCmd.Flags().BoolVar(&configPath, "path", false, "Print the config file path only")
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := appWorkspace.ConfigPath

	if configPath {
		fmt.Println(path)
		return nil
	}

	if configEdit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config file not found at %s (run 'neo init')", path)
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		c := exec.Command(GetPreferredEditor(), path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	}

	out, err := renderConfig(appConfig)
	if err != nil {
		return err
	}
	fmt.Println(ui.FormatMuted("# " + path))
	fmt.Print(out)
	return nil
}

// renderConfig marshals the configuration with the API key masked
func renderConfig(cfg *config.Config) (string, error) {
	masked := *cfg
	masked.APIKey = maskKey(cfg.APIKey)

	data, err := yaml.Marshal(&masked)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// maskKey keeps the last four characters of a real key
func maskKey(key string) string {
	if key == "" || key == config.DemoAPIKey {
		return key
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
