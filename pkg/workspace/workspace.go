package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace represents the managed data directory for neo
type Workspace struct {
	RootPath    string
	CachePath   string
	ExportsPath string
	ChartsPath  string
	LogsPath    string
	ConfigPath  string
}

// New creates a new Workspace instance with XDG-compliant paths
func New() (*Workspace, error) {
	rootPath, rootErr := getDataRoot()
	configPath, configErr := getConfigPath()
	if rootErr != nil {
		return nil, fmt.Errorf("failed to determine data root: %w", rootErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	return NewAt(rootPath, configPath), nil
}

// NewAt creates a workspace rooted at an explicit directory
func NewAt(rootPath, configPath string) *Workspace {
	return &Workspace{
		RootPath:    rootPath,
		CachePath:   filepath.Join(rootPath, "cache"),
		ExportsPath: filepath.Join(rootPath, "exports"),
		ChartsPath:  filepath.Join(rootPath, "charts"),
		LogsPath:    filepath.Join(rootPath, "logs"),
		ConfigPath:  configPath,
	}
}

// getDataRoot returns the workspace root directory path
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getDataRoot() (string, error) {
	if dir := os.Getenv("NEO_HOME"); dir != "" {
		return dir, nil
	}

	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "neo"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "neo"), nil
	}

	return filepath.Join(homeDir, ".local", "share", "neo"), nil
}

func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "neo", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "neo-config", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", "neo", "config.yaml"), nil
}

// Initialize creates the workspace directory structure if it doesn't exist
func (w *Workspace) Initialize() error {
	directories := []string{
		w.RootPath,
		w.CachePath,
		w.ExportsPath,
		w.ChartsPath,
		w.LogsPath,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the workspace has been initialized
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// FeedCachePath returns the cache file for a feed date
func (w *Workspace) FeedCachePath(date string) string {
	return filepath.Join(w.CachePath, "feed-"+date+".json")
}

// DateFromCacheFile extracts the date from a cache file name
// "feed-2024-01-01.json" -> "2024-01-01"
func DateFromCacheFile(name string) (string, bool) {
	name = filepath.Base(name)
	if !strings.HasPrefix(name, "feed-") || !strings.HasSuffix(name, ".json") {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(name, "feed-"), ".json"), true
}

// ExportPath returns the full path for an export file
func (w *Workspace) ExportPath(filename string) string {
	return filepath.Join(w.ExportsPath, filename)
}

// ChartPath returns the HTML chart path for a slug
func (w *Workspace) ChartPath(slug string) string {
	return filepath.Join(w.ChartsPath, slug+".html")
}

// LogFile returns the path of the structured log file
func (w *Workspace) LogFile() string {
	return filepath.Join(w.LogsPath, "neo.log")
}

// EnvFile returns the optional .env file next to the config file
func (w *Workspace) EnvFile() string {
	return filepath.Join(filepath.Dir(w.ConfigPath), ".env")
}

// CleanCache removes all files in the cache directory
func (w *Workspace) CleanCache() error {
	entries, err := os.ReadDir(w.CachePath)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(w.CachePath, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	return nil
}
