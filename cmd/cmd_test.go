package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/ports/mocks"
	"github.com/kamal-hamza/neo-cli/internal/core/services"
	"github.com/kamal-hamza/neo-cli/pkg/config"
	"github.com/kamal-hamza/neo-cli/pkg/workspace"
)

const testDate = "2024-01-01"

func testRecord(id, name string, minKm, maxKm float64, hazardous bool, velocity, miss string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
  "id": %q,
  "name": %q,
  "nasa_jpl_url": "https://ssd.jpl.nasa.gov/?sstr=%s",
  "absolute_magnitude_h": 19.7,
  "estimated_diameter": {"kilometers": {"estimated_diameter_min": %g, "estimated_diameter_max": %g}},
  "is_potentially_hazardous_asteroid": %t,
  "close_approach_data": [{
    "close_approach_date": %q,
    "relative_velocity": {"kilometers_per_second": %q},
    "miss_distance": {"kilometers": %q},
    "orbiting_body": "Earth"
  }]
}`, id, name, id, minKm, maxKm, hazardous, testDate, velocity, miss))
}

// testFeed holds three valid asteroids and one malformed record
func testFeed() *domain.Feed {
	records := []json.RawMessage{
		testRecord("1002", "Bennu (1999 RQ36)", 0.45, 0.55, false, "6.0", "750000"),
		testRecord("1001", "Apophis (2004 MN4)", 0.3, 0.6, true, "7.4", "38000"),
		json.RawMessage(`{"id": "1004", "name": "Broken"}`),
		testRecord("1003", "Small (2024 AA)", 0.01, 0.02, false, "12.5", "1200000"),
	}
	return &domain.Feed{
		ElementCount:     len(records),
		NearEarthObjects: map[string][]json.RawMessage{testDate: records},
	}
}

// setupTestApp wires the package globals against mocks and a temp workspace
func setupTestApp(t *testing.T) {
	t.Helper()

	root := t.TempDir()
	appWorkspace = workspace.NewAt(root, filepath.Join(root, "config.yaml"))
	if err := appWorkspace.Initialize(); err != nil {
		t.Fatalf("failed to initialize workspace: %v", err)
	}
	appConfig = config.DefaultConfig()
	logger = zap.NewNop()
	offline = false

	source := mocks.NewMockFeedSource()
	source.SetFeed(testDate, testFeed())
	store := mocks.NewMockFeedStore()

	feedService = services.NewFeedService(source, store, logger)
	catalogService = services.NewCatalogService(feedService, appConfig.DensityKgM3, logger)
	mergeService = services.NewMergeService(catalogService, logger)
	trajectoryService = services.NewTrajectoryService(services.SampleRequest{})
	exportService = services.NewExportService(catalogService, mocks.NewMockReportWriter(), logger)
}

// testEntries returns the catalog of the test feed in energy order
func testEntries(t *testing.T) []services.CatalogEntry {
	t.Helper()
	resp, err := catalogService.Execute(context.Background(), services.CatalogRequest{
		Feed: services.FeedRequest{Date: testDate},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return resp.Entries
}

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"init", "fetch", "list", "show", "planets", "merge", "export",
		"orbit", "chart", "dashboard", "watch", "config", "version",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{cmdName})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", cmdName, err)
			}
			if cmd == nil {
				t.Fatalf("Command '%s' is nil", cmdName)
			}
			if cmd.Use == "" {
				t.Errorf("Command '%s' has no Use field", cmdName)
			}
		})
	}
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("Root command is nil")
	}

	if rootCmd.Use != "neo" {
		t.Errorf("Expected root command Use to be 'neo', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Root command Short description is empty")
	}

	if rootCmd.PersistentFlags().Lookup("offline") == nil {
		t.Error("Expected persistent --offline flag")
	}
}

// TestCommandsHaveHelp verifies all commands have help text
func TestCommandsHaveHelp(t *testing.T) {
	commands := rootCmd.Commands()

	if len(commands) == 0 {
		t.Fatal("No commands registered")
	}

	for _, cmd := range commands {
		t.Run(cmd.Name(), func(t *testing.T) {
			if cmd.Short == "" {
				t.Errorf("Command '%s' has no Short description", cmd.Name())
			}
		})
	}
}

// TestDashboardRegisteredOnce guards against duplicate registration
func TestDashboardRegisteredOnce(t *testing.T) {
	count := 0
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "dashboard" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected dashboard to be registered once, got %d", count)
	}
}

// TestFlagsExist verifies important flags are registered
func TestFlagsExist(t *testing.T) {
	tests := []struct {
		command  string
		flagName string
	}{
		{"fetch", "date"},
		{"fetch", "end"},
		{"fetch", "jobs"},
		{"list", "date"},
		{"list", "file"},
		{"list", "hazardous"},
		{"list", "sort"},
		{"list", "reverse"},
		{"list", "limit"},
		{"show", "pick"},
		{"show", "copy"},
		{"show", "raw"},
		{"merge", "export"},
		{"export", "out"},
		{"export", "no-escape"},
		{"orbit", "planet"},
		{"orbit", "slider"},
		{"chart", "planet"},
		{"chart", "open"},
		{"config", "edit"},
		{"config", "path"},
	}

	for _, tt := range tests {
		t.Run(tt.command+"_"+tt.flagName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.command})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", tt.command, err)
			}

			if cmd.Flags().Lookup(tt.flagName) == nil {
				t.Errorf("Flag '--%s' not found on command '%s'", tt.flagName, tt.command)
			}
		})
	}
}

// TestCommandAliases verifies command aliases work
func TestCommandAliases(t *testing.T) {
	tests := []struct {
		alias   string
		command string
	}{
		{"ls", "list"},
		{"dash", "dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.alias})
			if err != nil {
				t.Fatalf("Alias '%s' not found: %v", tt.alias, err)
			}
			if cmd.Name() != tt.command {
				t.Errorf("Alias '%s' resolved to '%s', want '%s'", tt.alias, cmd.Name(), tt.command)
			}
		})
	}
}

// TestInitCommand verifies init runs without an initialized workspace
func TestInitCommand(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"init"})
	if err != nil {
		t.Fatalf("Init command not found: %v", err)
	}

	if cmd.PersistentPreRunE != nil {
		t.Error("Init command should not have PersistentPreRunE")
	}
	if !skipsInit["init"] || !skipsInit["planets"] {
		t.Error("init and planets must run without a workspace")
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	root := t.TempDir()
	ws := workspace.NewAt(root, filepath.Join(root, "neo", "config.yaml"))

	created, err := createDefaultConfig(ws)
	if err != nil {
		t.Fatalf("createDefaultConfig failed: %v", err)
	}
	if !created {
		t.Error("Expected the config to be created")
	}

	cfg, err := config.Load(ws.ConfigPath)
	if err != nil {
		t.Fatalf("default config does not load: %v", err)
	}
	if cfg.DefaultSort != "energy" {
		t.Errorf("Expected default sort 'energy', got %q", cfg.DefaultSort)
	}

	created, err = createDefaultConfig(ws)
	if err != nil || created {
		t.Errorf("Existing config must be kept, got created=%v err=%v", created, err)
	}
}

func TestFeedFlagsRequest(t *testing.T) {
	setupTestApp(t)

	f := feedFlags{date: testDate}
	req := f.request()
	if req.Date != testDate {
		t.Errorf("Expected date %s, got %s", testDate, req.Date)
	}
	if !req.PreferCache {
		t.Error("Expected cache to be preferred when caching is enabled")
	}

	f.refresh = true
	if f.request().PreferCache {
		t.Error("--refresh must bypass the cache")
	}

	offline = true
	defer func() { offline = false }()
	if !f.request().Offline {
		t.Error("Expected --offline to carry into the request")
	}

	if (&feedFlags{}).request().Date != services.Today() {
		t.Error("Expected the date to default to today")
	}
}

func TestSelectEntry(t *testing.T) {
	setupTestApp(t)
	entries := testEntries(t)

	e, err := selectEntry(entries, "apophis", 0)
	if err != nil {
		t.Fatalf("selectEntry by name failed: %v", err)
	}
	if e.Asteroid.ID != "1001" {
		t.Errorf("Expected Apophis, got %s", e.Asteroid.Name)
	}

	e, err = selectEntry(entries, "", 2)
	if err != nil {
		t.Fatalf("selectEntry by pick failed: %v", err)
	}
	if e.Asteroid.ID != entries[1].Asteroid.ID {
		t.Errorf("Expected second entry, got %s", e.Asteroid.Name)
	}

	if _, err := selectEntry(entries, "", 9); err == nil {
		t.Error("Expected an error for an out of range pick")
	}
	if _, err := selectEntry(nil, "apophis", 0); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for an empty feed, got %v", err)
	}
	if _, err := selectEntry(entries, "zzzz", 0); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for an unknown query, got %v", err)
	}
}

func TestReportDetails(t *testing.T) {
	setupTestApp(t)
	entries := testEntries(t)

	out := reportDetails(entries[0].Report)
	for _, want := range []string{"1001", "AU", "Mass", "Escape velocity", "Kinetic energy", "Impact energy", "https://ssd.jpl.nasa.gov"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected details to contain %q:\n%s", want, out)
		}
	}

	preview := entryPreview(entries[0])
	if !strings.Contains(preview, "Potentially hazardous") {
		t.Errorf("Expected hazard line in preview:\n%s", preview)
	}
}

func TestHighlightJSON(t *testing.T) {
	out := highlightJSON(`{"id": "1001"}`)
	if !strings.Contains(out, "1001") {
		t.Errorf("Expected highlighted output to keep content, got %q", out)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{config.DemoAPIKey, config.DemoAPIKey},
		{"abc", "***"},
		{"abcdefgh1234", "********1234"},
	}
	for _, tt := range tests {
		if got := maskKey(tt.in); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderConfigMasksKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.APIKey = "secret-key-9876"

	out, err := renderConfig(cfg)
	if err != nil {
		t.Fatalf("renderConfig failed: %v", err)
	}
	if strings.Contains(out, "secret-key") {
		t.Errorf("API key leaked:\n%s", out)
	}
	if !strings.Contains(out, "9876") {
		t.Errorf("Expected the key suffix in output:\n%s", out)
	}
	if cfg.APIKey != "secret-key-9876" {
		t.Error("renderConfig must not modify the config")
	}
}

func TestExportTarget(t *testing.T) {
	setupTestApp(t)

	if got := exportTarget("report.csv"); got != appWorkspace.ExportPath("report.csv") {
		t.Errorf("Expected bare names in the exports directory, got %s", got)
	}
	abs := filepath.Join(t.TempDir(), "out.csv")
	if got := exportTarget(abs); got != abs {
		t.Errorf("Expected absolute path unchanged, got %s", got)
	}
	if got := exportTarget(filepath.Join("sub", "out.csv")); got != filepath.Join("sub", "out.csv") {
		t.Errorf("Expected relative path unchanged, got %s", got)
	}
}

func TestSummarizeCatalog(t *testing.T) {
	setupTestApp(t)

	resp, err := catalogService.Execute(context.Background(), services.CatalogRequest{
		Feed: services.FeedRequest{Date: testDate},
	})
	if err != nil {
		t.Fatalf("catalog failed: %v", err)
	}

	line := summarizeCatalog(testDate, resp)
	for _, want := range []string{testDate, "3 asteroids", "1 hazardous", "1 skipped", "Apophis"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected summary to contain %q, got %q", want, line)
		}
	}
}

func TestCreateProgressBar(t *testing.T) {
	bar := createProgressBar(50, 10)
	if strings.Count(bar, "█") != 5 || strings.Count(bar, "░") != 5 {
		t.Errorf("Expected half-filled bar, got %q", bar)
	}
	if strings.Count(createProgressBar(150, 4), "█") != 4 {
		t.Error("Expected overfull bar to be clamped")
	}
}

func TestRenderOrbitCanvas(t *testing.T) {
	setupTestApp(t)
	entries := testEntries(t)

	traj := trajectoryService.ForAsteroid(entries[0].Asteroid, services.SampleRequest{})
	clock := trajectoryService.Clock(traj, 0, services.SampleRequest{})

	out := renderOrbitCanvas(traj, clock, 60, 20).String()
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("Expected 20 rows, got %d", len(lines))
	}
	if !strings.ContainsRune(out, 'O') {
		t.Error("Expected the central body to be drawn")
	}
	if !strings.ContainsRune(out, '●') {
		t.Error("Expected the body marker to be drawn")
	}
	if !strings.ContainsRune(out, '·') {
		t.Error("Expected the sampled path to be drawn")
	}
}

func TestWriteChart(t *testing.T) {
	setupTestApp(t)

	traj, err := trajectoryService.ForPlanet("mars", services.SampleRequest{})
	if err != nil {
		t.Fatalf("ForPlanet failed: %v", err)
	}

	renderer := mocks.NewMockChartRenderer()
	path := appWorkspace.ChartPath(domain.GenerateSlug(traj.Name))
	if err := writeChart(context.Background(), renderer, traj, path); err != nil {
		t.Fatalf("writeChart failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if !strings.Contains(string(data), "Mars") {
		t.Errorf("Unexpected chart content %q", data)
	}
	if rendered := renderer.GetRendered(); len(rendered) != 1 || rendered[0].CentralBody != "Sun" {
		t.Errorf("Expected one heliocentric render, got %+v", rendered)
	}
}

func TestResolveTrajectoryPlanet(t *testing.T) {
	setupTestApp(t)

	traj, err := resolveTrajectory(context.Background(), feedFlags{}, "Jupiter", nil)
	if err != nil {
		t.Fatalf("resolveTrajectory failed: %v", err)
	}
	if traj.Params.Hyperbolic() {
		t.Error("Planet orbits must be elliptical")
	}

	if _, err := resolveTrajectory(context.Background(), feedFlags{}, "Pluto", nil); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for Pluto, got %v", err)
	}
}

func TestResolveTrajectoryAsteroid(t *testing.T) {
	setupTestApp(t)

	traj, err := resolveTrajectory(context.Background(), feedFlags{date: testDate}, "", []string{"bennu"})
	if err != nil {
		t.Fatalf("resolveTrajectory failed: %v", err)
	}
	if !traj.Params.Hyperbolic() || traj.CentralBody != "Earth" {
		t.Errorf("Expected a hyperbolic flyby around Earth, got %+v", traj.Params)
	}
	if traj.MissDistanceKm != 750000 {
		t.Errorf("Expected physical miss distance 750000, got %g", traj.MissDistanceKm)
	}
}
