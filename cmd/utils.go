package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/services"
	"github.com/kamal-hamza/neo-cli/pkg/physics"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
)

// feedFlags are the flags shared by every command that reads a feed
type feedFlags struct {
	date    string
	file    string
	refresh bool
}

func (f *feedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "Feed date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read the feed from a local JSON file")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "Ignore cached feeds and query the API")
}

// request builds the feed request for the flags and global settings
func (f *feedFlags) request() services.FeedRequest {
	date := f.date
	if date == "" {
		date = services.Today()
	}
	return services.FeedRequest{
		Date:        date,
		File:        f.file,
		Offline:     offline,
		PreferCache: appConfig != nil && appConfig.CacheEnabled && !f.refresh,
	}
}

// reportFeedIssues prints the source warning and skipped records of a catalog
func reportFeedIssues(resp *services.CatalogResponse) {
	if resp.Warning != "" {
		fmt.Println(ui.FormatWarning(resp.Warning))
	}
	for _, sk := range resp.Skipped {
		fmt.Println(ui.FormatWarning("Skipped " + sk.Error()))
	}
}

// pickIndex is set by --pick on commands that select an asteroid
var pickIndex int

// selectEntry resolves an asteroid from a query, a --pick index or the
// interactive fuzzy finder, in that order
func selectEntry(entries []services.CatalogEntry, query string, pick int) (services.CatalogEntry, error) {
	if len(entries) == 0 {
		return services.CatalogEntry{}, fmt.Errorf("no asteroids in feed: %w", services.ErrNotFound)
	}

	if query != "" {
		return catalogService.Find(entries, query)
	}

	if pick > 0 {
		if pick > len(entries) {
			return services.CatalogEntry{}, fmt.Errorf("--pick %d out of range (1-%d)", pick, len(entries))
		}
		return entries[pick-1], nil
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string { return entries[i].Asteroid.Name },
		fuzzyfinder.WithPromptString("asteroid> "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return entryPreview(entries[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return services.CatalogEntry{}, fmt.Errorf("selection cancelled")
		}
		return services.CatalogEntry{}, fmt.Errorf("no terminal for selection, use a query or --pick: %w", err)
	}
	return entries[idx], nil
}

// entryPreview is the plain-text summary shown next to the fuzzy finder
func entryPreview(e services.CatalogEntry) string {
	r := e.Report
	var s strings.Builder
	fmt.Fprintf(&s, "%s\n\n", r.Name)
	fmt.Fprintf(&s, "ID:            %s\n", r.ID)
	fmt.Fprintf(&s, "Approach:      %s\n", r.CloseApproachDate)
	fmt.Fprintf(&s, "Diameter:      %s - %s km\n", ui.FormatQuantity(r.MinDiameterKm, ""), ui.FormatQuantity(r.MaxDiameterKm, ""))
	fmt.Fprintf(&s, "Velocity:      %s\n", ui.FormatQuantity(r.RelativeVelocityKmPerS, "km/s"))
	fmt.Fprintf(&s, "Miss distance: %s\n", ui.FormatQuantity(r.MissDistanceKm, "km"))
	fmt.Fprintf(&s, "Mass:          %s\n", ui.FormatQuantity(r.MassKg, "kg"))
	fmt.Fprintf(&s, "Impact energy: %s\n", physics.TNTEquivalent(r.ImpactEnergyMegatons))
	if r.IsHazardous {
		s.WriteString("\nPotentially hazardous\n")
	}
	return s.String()
}

// reportDetails renders every derived quantity of a report as key-value lines
func reportDetails(r domain.Report) string {
	var s strings.Builder
	line := func(k, v string) {
		s.WriteString(ui.RenderKeyValue(k, v))
		s.WriteString("\n")
	}

	line("ID", r.ID)
	if r.JPLURL != "" {
		line("JPL", r.JPLURL)
	}
	if r.HasAbsoluteMagnitude {
		line("Absolute magnitude", ui.FormatQuantity(r.AbsoluteMagnitudeH, "H"))
	}
	line("Diameter", fmt.Sprintf("%s - %s km", ui.FormatQuantity(r.MinDiameterKm, ""), ui.FormatQuantity(r.MaxDiameterKm, "")))
	line("Hazardous", ui.FormatHazard(r.IsHazardous))
	line("Close approach", r.CloseApproachDate)
	line("Relative velocity", ui.FormatQuantity(r.RelativeVelocityKmPerS, "km/s"))
	miss := ui.FormatQuantity(r.MissDistanceKm, "km")
	if au, err := physics.MissDistanceAU(r.MissDistanceKm); err == nil {
		miss += " (" + ui.FormatQuantity(au, "AU") + ")"
	}
	line("Miss distance", miss)
	line("Mass", ui.FormatQuantity(r.MassKg, "kg"))
	line("Surface gravity", ui.FormatQuantity(r.SurfaceGravity, "m/s²"))
	line("Escape velocity", ui.FormatQuantity(r.EscapeVelocityKmPerS, "km/s"))
	if ke, err := physics.KineticEnergyJoules(r.MassKg, r.RelativeVelocityKmPerS*1000); err == nil {
		line("Kinetic energy", ui.FormatQuantity(ke, "J"))
	}
	line("Impact energy", fmt.Sprintf("%s Mt (%s)", ui.FormatQuantity(r.ImpactEnergyMegatons, ""), physics.TNTEquivalent(r.ImpactEnergyMegatons)))
	return s.String()
}

// highlightJSON applies syntax highlighting to a raw feed record
func highlightJSON(content string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.TTY16m

	var buf strings.Builder
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content
	}

	return buf.String()
}

// GetPreferredEditor returns the editor command from the environment or default
func GetPreferredEditor() string {
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "vi"
}

// OpenFile opens a file with the OS default application
func OpenFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	// Start() detaches so neo can exit while the browser stays open
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}
	return nil
}
