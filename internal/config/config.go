// Package config loads the YAML file that tunes document generation:
// asset location, output directory, rendering options, footer text, date
// format and image placements.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-findoc/internal/dateutil"
	"github.com/alnah/go-findoc/internal/fileutil"
	"github.com/alnah/go-findoc/internal/overlay"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Limits on config values.
const (
	MaxInputSize  = 1 << 20 // bytes of YAML
	MaxPathLength = 4096
	MaxTextLength = 500 // footer text
	MaxMarginMM   = 100
	MaxTimeout    = 10 * time.Minute
)

// appDir is the directory searched under the user config dir.
const appDir = "go-findoc"

// Config holds all configuration for document generation.
// Zero values select the library defaults.
type Config struct {
	Assets     AssetsConfig   `yaml:"assets"`
	Output     OutputConfig   `yaml:"output"`
	Render     RenderConfig   `yaml:"render"`
	Footer     FooterConfig   `yaml:"footer"`
	Document   DocumentConfig `yaml:"document"`
	Placements overlay.Table  `yaml:"placements"` // replaces entries of the default table
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // templates and images; empty = embedded templates only
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = working directory
}

// RenderConfig defines browser rendering options.
type RenderConfig struct {
	Timeout      string  `yaml:"timeout"` // Go duration, e.g. "45s"
	Grid         bool    `yaml:"grid"`    // draw the debug grid on every page
	MarginTop    float64 `yaml:"marginTop"`
	MarginBottom float64 `yaml:"marginBottom"`
}

// FooterConfig defines the footer printed on every page.
type FooterConfig struct {
	Text string `yaml:"text"`
}

// DocumentConfig defines how values are printed in documents.
type DocumentConfig struct {
	DateFormat string `yaml:"dateFormat"` // preset name or tokens, default DD/MM/YYYY
}

// TimeoutDuration parses Render.Timeout. An empty value returns 0.
func (r RenderConfig) TimeoutDuration() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 || d > MaxTimeout {
		return 0, fmt.Errorf("%w: render.timeout: must be between 0 and %s, got %s", ErrInvalidValue, MaxTimeout, d)
	}
	return d, nil
}

// Validate checks every field.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("footer.text", c.Footer.Text, MaxTextLength); err != nil {
		return err
	}

	if _, err := c.Render.TimeoutDuration(); err != nil {
		return err
	}
	if err := validateMargin("render.marginTop", c.Render.MarginTop); err != nil {
		return err
	}
	if err := validateMargin("render.marginBottom", c.Render.MarginBottom); err != nil {
		return err
	}

	if c.Document.DateFormat != "" {
		if _, err := dateutil.Layout(c.Document.DateFormat); err != nil {
			return fmt.Errorf("document.dateFormat: %w", err)
		}
	}

	for name := range c.Placements {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: placements: empty document type", ErrInvalidValue)
		}
	}
	if err := c.Placements.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateMargin(fieldName string, mm float64) error {
	if mm < 0 || mm > MaxMarginMM {
		return fmt.Errorf("%w: %s: must be between 0 and %dmm, got %.2f", ErrInvalidValue, fieldName, MaxMarginMM, mm)
	}
	return nil
}

// DefaultConfig returns a configuration that keeps every library default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// Paths (separators or a YAML extension) are read as is. Names are searched
// in SearchPaths order. A missing file is an error, never a silent default.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML strictly, rejecting unknown fields, and validates the
// result.
func Parse(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrConfigParse)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigParse, len(data), MaxInputSize)
	}

	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists where a config name is looked up, in order: the working
// directory, then the user config directory, each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, 2*len(extensions))

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
