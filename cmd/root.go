package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/neo-cli/internal/adapters/chart"
	"github.com/kamal-hamza/neo-cli/internal/adapters/export"
	"github.com/kamal-hamza/neo-cli/internal/adapters/nasa"
	"github.com/kamal-hamza/neo-cli/internal/adapters/repository"
	"github.com/kamal-hamza/neo-cli/internal/core/ports"
	"github.com/kamal-hamza/neo-cli/internal/core/services"
	"github.com/kamal-hamza/neo-cli/pkg/config"
	"github.com/kamal-hamza/neo-cli/pkg/logging"
	"github.com/kamal-hamza/neo-cli/pkg/ui"
	"github.com/kamal-hamza/neo-cli/pkg/workspace"
)

var (
	// Global workspace and configuration
	appWorkspace *workspace.Workspace
	appConfig    *config.Config
	logger       = zap.NewNop()
	sessionID    string

	// Services
	feedService       *services.FeedService
	catalogService    *services.CatalogService
	mergeService      *services.MergeService
	trajectoryService *services.TrajectoryService
	exportService     *services.ExportService

	// Adapters
	feedRepo      *repository.FeedRepository
	nasaClient    *nasa.Client
	chartRenderer ports.ChartRenderer

	// Global flags
	verbose bool
	offline bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "neo",
	Short: "NEO - Near-Earth-Object analyzer",
	Long: ui.StyleTitle.Render("NEO") + " - Near-Earth-Object analyzer\n\n" +
		"Fetch the NASA NeoWs close-approach feed, derive mass, gravity and impact\n" +
		"energy for every asteroid, merge bodies, and animate their flybys.",
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: closeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(planetsCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(orbitCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also write log records to stderr")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Never contact the NASA API; use cached feeds only")
}

// skipsInit lists commands that run without an initialized workspace
var skipsInit = map[string]bool{
	"init":    true,
	"version": true,
	"help":    true,
	"planets": true,
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	ws, err := workspace.New()
	if err != nil {
		return fmt.Errorf("failed to determine workspace: %w", err)
	}
	appWorkspace = ws

	cfg, err := config.Load(ws.ConfigPath)
	if err != nil {
		if !skipsInit[cmd.Name()] {
			return err
		}
		cfg = config.DefaultConfig()
	}
	appConfig = cfg
	ui.SetTheme(cfg.ColorTheme)

	if skipsInit[cmd.Name()] {
		return nil
	}

	if !appWorkspace.Exists() {
		fmt.Println(ui.FormatError("Workspace not initialized"))
		fmt.Println(ui.FormatInfo("Run 'neo init' to create it"))
		return fmt.Errorf("workspace not found at %s", appWorkspace.RootPath)
	}

	sessionID = uuid.NewString()
	l, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    appWorkspace.LogFile(),
		Verbose: verbose,
		Session: sessionID,
	})
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("command started", zap.String("command", cmd.CommandPath()))

	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	wireServices(cfg)
	return nil
}

// wireServices builds adapters and services from the loaded configuration
func wireServices(cfg *config.Config) {
	feedRepo = repository.NewFeedRepository(appWorkspace)
	nasaClient = nasa.NewClient(nasa.Options{
		BaseURL:           cfg.APIBaseURL,
		APIKey:            cfg.APIKey,
		Timeout:           time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		RetryMax:          cfg.RetryMax,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger.Named("nasa"),
	})
	chartRenderer = chart.NewEChartsRenderer()

	if offline {
		feedService = services.NewFeedService(nil, feedRepo, logger.Named("feed"))
	} else {
		feedService = services.NewFeedService(nasaClient, feedRepo, logger.Named("feed"))
	}
	catalogService = services.NewCatalogService(feedService, cfg.DensityKgM3, logger.Named("catalog"))
	mergeService = services.NewMergeService(catalogService, logger.Named("merge"))
	trajectoryService = services.NewTrajectoryService(services.SampleRequest{
		Scale:        cfg.ScaleFactor,
		Eccentricity: cfg.FlybyEccentricity,
		Step:         cfg.ThetaStep,
		Session:      sessionID,
	})
	exportService = services.NewExportService(catalogService, export.NewCSVWriter(), logger.Named("export"))
}

func closeApp(cmd *cobra.Command, args []string) error {
	// Sync reports EINVAL for a console stderr on some platforms
	_ = logger.Sync()
	return nil
}

// getContext returns the command context, cancelled on interrupt
func getContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
