// Package config loads the server's settings from an optional JSON file and
// the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/icon-factory-mcp/internal/iconkit"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig     = "ICON_MCP_CONFIG"
	EnvLogLevel   = "ICON_MCP_LOG_LEVEL"
	EnvLogFile    = "ICON_MCP_LOG_FILE"
	EnvCacheLimit = "ICON_MCP_CACHE_LIMIT"
)

// Config holds host settings and the pipeline defaults applied to tool calls
// that leave an option out.
type Config struct {
	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// CacheLimit caps the number of decoded images kept in memory.
	// 0 means unbounded.
	CacheLimit int `json:"cache_limit"`

	// OutputFormat is the default encoding for generated images: png or webp.
	OutputFormat string `json:"output_format"`

	Defaults PipelineDefaults `json:"defaults"`
}

// PipelineDefaults are the fallbacks for per-request pipeline options.
type PipelineDefaults struct {
	Tolerance     int                  `json:"tolerance"`
	CropPadding   int                  `json:"crop_padding"`
	EdgeThreshold int                  `json:"edge_threshold"`
	Defringe      bool                 `json:"defringe"`
	SmartCleanup  bool                 `json:"smart_cleanup"`
	Smart         iconkit.SmartOptions `json:"smart"`
}

// Flags holds CLI flag values that override file and environment settings.
type Flags struct {
	LogLevel string
	LogFile  string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:     "info",
		CacheLimit:   32,
		OutputFormat: "png",
		Defaults: PipelineDefaults{
			Tolerance:     30,
			EdgeThreshold: iconkit.DefaultEdgeThreshold,
			Smart:         iconkit.DefaultSmartOptions(),
		},
	}
}

// Load reads a JSON config file on top of Default.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from ICON_MCP_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvCacheLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvCacheLimit, err)
		}
		c.CacheLimit = n
	}
	return nil
}

// Resolve applies CLI flags and normalizes the result.
func (c *Config) Resolve(flags Flags) {
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.OutputFormat = strings.ToLower(c.OutputFormat)
	if c.OutputFormat == "" {
		c.OutputFormat = "png"
	}
	if c.CacheLimit < 0 {
		c.CacheLimit = 0
	}
	if c.Defaults.Smart.Factor == 0 {
		c.Defaults.Smart.Factor = iconkit.DefaultSmartFactor
	}
	if c.Defaults.Smart.BlurRadius == 0 {
		c.Defaults.Smart.BlurRadius = iconkit.DefaultSmartBlurRadius
	}
}

// Debug reports whether verbose logging is enabled.
func (c *Config) Debug() bool { return c.LogLevel == "debug" }

// Validate checks the settings that Resolve cannot repair.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	switch c.OutputFormat {
	case "png", "webp":
	default:
		return fmt.Errorf("config: unknown output format %q", c.OutputFormat)
	}
	if t := c.Defaults.Tolerance; t < 0 || t > iconkit.MaxTolerance {
		return fmt.Errorf("config: defaults: tolerance %d must be in [0,%d]", t, iconkit.MaxTolerance)
	}
	if err := c.Defaults.Pipeline().Validate(); err != nil {
		return fmt.Errorf("config: defaults: %w", err)
	}
	return nil
}

// Pipeline builds the pipeline configuration the defaults describe, with
// masking disabled. Tool handlers start from it and apply request options.
func (d PipelineDefaults) Pipeline() iconkit.Config {
	cfg := iconkit.DefaultConfig()
	cfg.CropPadding = d.CropPadding
	cfg.Edges.Defringe = d.Defringe
	cfg.Edges.EdgeThreshold = d.EdgeThreshold
	cfg.Edges.SmartCleanup = d.SmartCleanup
	cfg.Edges.Smart = d.Smart
	return cfg
}
