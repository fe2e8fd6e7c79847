package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	viper "github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	logger "github.com/uioperator/uictl/internal/logger"
)

// DefaultConfigPath is the config file location relative to the working
// directory.
const DefaultConfigPath = ".uictl/config.yaml"

// EnvPrefix is the prefix for environment variable overrides, e.g.
// UICTL_SERVER_PORT overrides server.port.
const EnvPrefix = "UICTL"

// Config represents the CLI configuration
type Config struct {
	Grid       GridConfig       `yaml:"grid" mapstructure:"grid"`
	Display    DisplayConfig    `yaml:"display" mapstructure:"display"`
	Input      InputConfig      `yaml:"input" mapstructure:"input"`
	Screenshot ScreenshotConfig `yaml:"screenshot" mapstructure:"screenshot"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
}

// GridConfig contains the grid geometry applied at startup
type GridConfig struct {
	Rows    int           `yaml:"rows" mapstructure:"rows"`
	Columns int           `yaml:"columns" mapstructure:"columns"`
	Scheme  string        `yaml:"scheme" mapstructure:"scheme"`
	Bounds  *BoundsConfig `yaml:"bounds,omitempty" mapstructure:"bounds"`
}

// BoundsConfig pins the grid to a fixed screen region instead of the
// detected primary display bounds
type BoundsConfig struct {
	X      int `yaml:"x" mapstructure:"x"`
	Y      int `yaml:"y" mapstructure:"y"`
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

// DisplayConfig selects the display backend
type DisplayConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"` // empty = auto-detect
	Name    string `yaml:"name" mapstructure:"name"`       // display name, e.g. ":0"
}

// InputConfig contains input injection settings
type InputConfig struct {
	TypeDelayMs    int             `yaml:"type_delay_ms" mapstructure:"type_delay_ms"`
	ClickDelayMs   int             `yaml:"click_delay_ms" mapstructure:"click_delay_ms"`
	DragDurationMs int             `yaml:"drag_duration_ms" mapstructure:"drag_duration_ms"`
	PasteThreshold int             `yaml:"paste_threshold" mapstructure:"paste_threshold"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// TypeDelay returns the per-keystroke typing delay.
func (c InputConfig) TypeDelay() time.Duration {
	return time.Duration(c.TypeDelayMs) * time.Millisecond
}

// ClickDelay returns the pause between the clicks of a multi-click.
func (c InputConfig) ClickDelay() time.Duration {
	return time.Duration(c.ClickDelayMs) * time.Millisecond
}

// DragDuration returns the default drag duration.
func (c InputConfig) DragDuration() time.Duration {
	return time.Duration(c.DragDurationMs) * time.Millisecond
}

// RateLimitConfig contains rate limiting settings for input actions
type RateLimitConfig struct {
	Enabled             bool `yaml:"enabled" mapstructure:"enabled"`
	MaxActionsPerMinute int  `yaml:"max_actions_per_minute" mapstructure:"max_actions_per_minute"`
	WindowSeconds       int  `yaml:"window_seconds" mapstructure:"window_seconds"`
}

// ScreenshotConfig contains screen capture settings
type ScreenshotConfig struct {
	BufferSize int           `yaml:"buffer_size" mapstructure:"buffer_size"`
	Overlay    OverlayConfig `yaml:"overlay" mapstructure:"overlay"`
}

// OverlayConfig controls the grid overlay drawn onto screenshots
type OverlayConfig struct {
	ShowLabels bool `yaml:"show_labels" mapstructure:"show_labels"`
	LineAlpha  int  `yaml:"line_alpha" mapstructure:"line_alpha"` // 0-255
}

// ServerConfig contains MCP server transport settings
type ServerConfig struct {
	Transport string `yaml:"transport" mapstructure:"transport"` // "stdio" or "http"
	Host      string `yaml:"host" mapstructure:"host"`
	Port      int    `yaml:"port" mapstructure:"port"`
	Path      string `yaml:"path" mapstructure:"path"`
}

// Addr returns the host:port address for the HTTP transport.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Rows:    3,
			Columns: 3,
			Scheme:  "alphanumeric",
		},
		Display: DisplayConfig{
			Backend: "",
			Name:    "",
		},
		Input: InputConfig{
			TypeDelayMs:    50,
			ClickDelayMs:   50,
			DragDurationMs: 500,
			PasteThreshold: 200,
			RateLimit: RateLimitConfig{
				Enabled:             false,
				MaxActionsPerMinute: 120,
				WindowSeconds:       60,
			},
		},
		Screenshot: ScreenshotConfig{
			BufferSize: 10,
			Overlay: OverlayConfig{
				ShowLabels: true,
				LineAlpha:  160,
			},
		},
		Server: ServerConfig{
			Transport: "stdio",
			Host:      "localhost",
			Port:      8765,
			Path:      "/mcp",
		},
	}
}

// Load loads configuration from the given file, layering environment
// variable overrides (UICTL_*) on top. A missing file yields the default
// configuration.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = GetConfigPath()
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		logger.Debug("Config file not found, using default configuration", "path", configPath)
	} else {
		logger.Debug("Loading config file", "path", configPath)
		if err := v.ReadInConfig(); err != nil {
			logger.Error("Failed to read config file", "path", configPath, "error", err)
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		logger.Error("Failed to parse config file", "path", configPath, "error", err)
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	logger.Debug("Successfully loaded config", "path", configPath,
		"grid_rows", cfg.Grid.Rows, "grid_columns", cfg.Grid.Columns, "scheme", cfg.Grid.Scheme)
	return cfg, nil
}

// Save writes the configuration to the given file, creating parent
// directories as needed.
func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = GetConfigPath()
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("Failed to create config directory", "dir", dir, "error", err)
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize config: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		logger.Error("Failed to write config file", "path", configPath, "error", err)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	logger.Debug("Successfully saved config", "path", configPath)
	return nil
}

// GetConfigPath returns the config file path relative to the working
// directory.
func GetConfigPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return DefaultConfigPath
	}
	return filepath.Join(wd, DefaultConfigPath)
}
