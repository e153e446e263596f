package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DemoAPIKey is the shared, heavily rate-limited NASA key used when no key
// is configured
const DemoAPIKey = "DEMO_KEY"

type Config struct {
	// NASA NeoWs API
	APIKey                string  `yaml:"api_key"`
	APIBaseURL            string  `yaml:"api_base_url" validate:"required,url"`
	RequestTimeoutSeconds int     `yaml:"request_timeout_seconds" validate:"gte=1,lte=300"`
	RetryMax              int     `yaml:"retry_max" validate:"gte=0,lte=10"`
	RequestsPerSecond     float64 `yaml:"requests_per_second" validate:"gt=0"`

	// Physical model
	DensityKgM3 float64 `yaml:"density_kg_m3" validate:"gt=0"`

	// Orbit presentation
	FlybyEccentricity float64 `yaml:"flyby_eccentricity" validate:"gt=1"`
	ScaleFactor       float64 `yaml:"scale_factor" validate:"gt=0"`
	ThetaStep         float64 `yaml:"theta_step" validate:"gt=0,lt=1"`
	StartAnomalyDeg   float64 `yaml:"start_anomaly_deg" validate:"gte=-180,lte=180"`
	FPS               int     `yaml:"fps" validate:"gte=1,lte=120"`

	// Catalog
	MaxWorkers    int    `yaml:"max_workers" validate:"gte=1,lte=64"`
	DefaultSort   string `yaml:"default_sort" validate:"oneof=name size velocity distance energy date"`
	ReverseSort   bool   `yaml:"reverse_sort"`
	HazardousOnly bool   `yaml:"hazardous_only"`

	// UI Settings
	ColorTheme string `yaml:"color_theme" validate:"oneof=auto dark light"`

	// Export
	ExportEscapeVelocity bool `yaml:"export_escape_velocity"`

	// Performance
	CacheEnabled    bool `yaml:"cache_enabled"`
	WatchDebounceMS int  `yaml:"watch_debounce_ms" validate:"gte=0"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Warnings collected while loading, not persisted
	Warnings []string `yaml:"-"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		APIKey:                "",
		APIBaseURL:            "https://api.nasa.gov/neo/rest/v1",
		RequestTimeoutSeconds: 15,
		RetryMax:              3,
		RequestsPerSecond:     1.0,
		DensityKgM3:           3000,
		FlybyEccentricity:     1.5,
		ScaleFactor:           1e-5,
		ThetaStep:             0.01,
		StartAnomalyDeg:       -90,
		FPS:                   30,
		MaxWorkers:            4,
		DefaultSort:           "energy",
		ReverseSort:           false,
		HazardousOnly:         false,
		ColorTheme:            "auto",
		ExportEscapeVelocity:  true,
		CacheEnabled:          true,
		WatchDebounceMS:       500,
		LogLevel:              "info",
	}
}

// Load reads configuration from the specified file path. Values are layered
// as defaults, YAML file, optional .env file next to the config, then the
// process environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := LoadEnvFile(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	// Apply defaults for essential values if missing
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultConfig().APIBaseURL
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = "energy"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ColorTheme == "" {
		cfg.ColorTheme = "auto"
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		cfg.APIKey = DemoAPIKey
		cfg.Warnings = append(cfg.Warnings, "no API key configured, using DEMO_KEY (rate limited)")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays values from the environment. NEO_API_KEY takes
// precedence over the generic API_KEY.
func (c *Config) ApplyEnv() {
	if key := os.Getenv("NEO_API_KEY"); key != "" {
		c.APIKey = key
	} else if key := os.Getenv("API_KEY"); key != "" {
		c.APIKey = key
	}
	if url := os.Getenv("NEO_API_BASE_URL"); url != "" {
		c.APIBaseURL = url
	}
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: rule '%s %s', got '%v'", fe.StructField(), fe.Tag(), fe.Param(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// HasAPIKey reports whether a real key (not DEMO_KEY) is configured
func (c *Config) HasAPIKey() bool {
	return c.APIKey != "" && c.APIKey != DemoAPIKey
}
