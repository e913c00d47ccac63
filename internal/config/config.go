package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-slides2pdf/internal/fileutil"
	"github.com/alnah/go-slides2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxClassLength    = 100  // CSS class name
	MaxDurationLength = 20   // "1m30s"
)

// Valid driver and engine names.
const (
	DriverRod      = "rod"
	DriverChromedp = "chromedp"
	EngineGofpdf   = "gofpdf"
	EnginePdfcpu   = "pdfcpu"
)

// Default values.
const (
	DefaultURLFile        = "slides_urls.txt"
	DefaultOutputDir      = "output"
	DefaultWidth          = 1920
	DefaultHeight         = 1080
	DefaultSettle         = "1s"
	DefaultElementTimeout = "10s"
	DefaultTimeout        = "10m"
	DefaultMaxSlides      = 500
	DefaultLogLevel       = "info"
)

// Config holds all configuration for a capture run.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Browser BrowserConfig `yaml:"browser"`
	Capture CaptureConfig `yaml:"capture"`
	PDF     PDFConfig     `yaml:"pdf"`
	Log     LogConfig     `yaml:"log"`
}

// InputConfig defines where presentation URLs come from.
type InputConfig struct {
	URLFile string `yaml:"urlFile"` // One URL per line
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Created if absent
}

// BrowserConfig defines how the browser session is started.
type BrowserConfig struct {
	Driver       string `yaml:"driver"` // "rod" or "chromedp"
	Bin          string `yaml:"bin"`    // Empty = lookup
	Headless     bool   `yaml:"headless"`
	Sandbox      bool   `yaml:"sandbox"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	AutoDownload bool   `yaml:"autoDownload"` // rod only
}

// CaptureConfig defines slide walking options.
type CaptureConfig struct {
	Settle         string        `yaml:"settle"`         // Delay after each click
	ElementTimeout string        `yaml:"elementTimeout"` // Bounded wait for controls
	Timeout        string        `yaml:"timeout"`        // Per presentation, "0" = none
	MaxSlides      int           `yaml:"maxSlides"`
	Classes        ClassesConfig `yaml:"classes"`
}

// ClassesConfig names the CSS classes of the presentation controls.
type ClassesConfig struct {
	Fullscreen string `yaml:"fullscreen"`
	Content    string `yaml:"content"`
	Down       string `yaml:"down"`
	Right      string `yaml:"right"`
}

// PDFConfig defines PDF assembly options.
type PDFConfig struct {
	Engine string `yaml:"engine"` // "gofpdf" or "pdfcpu"
}

// LogConfig defines log output options.
type LogConfig struct {
	File       string `yaml:"file"`  // Empty = stderr
	Level      string `yaml:"level"` // debug, info, warn, error
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`
}

// Validate checks names, ranges, durations and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.urlFile", c.Input.URLFile, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("log.file", c.Log.File, MaxPathLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Browser.Driver) {
	case "", DriverRod, DriverChromedp:
		// valid
	default:
		return fmt.Errorf("%w: browser.driver %q (must be rod or chromedp)", ErrInvalidValue, c.Browser.Driver)
	}
	if c.Browser.Width < 0 || c.Browser.Height < 0 {
		return fmt.Errorf("%w: browser window size %dx%d", ErrInvalidValue, c.Browser.Width, c.Browser.Height)
	}

	durations := []struct{ field, value string }{
		{"capture.settle", c.Capture.Settle},
		{"capture.elementTimeout", c.Capture.ElementTimeout},
		{"capture.timeout", c.Capture.Timeout},
	}
	for _, d := range durations {
		if _, err := parseDuration(d.field, d.value); err != nil {
			return err
		}
	}
	if c.Capture.MaxSlides < 0 {
		return fmt.Errorf("%w: capture.maxSlides %d", ErrInvalidValue, c.Capture.MaxSlides)
	}

	classes := []struct{ field, value string }{
		{"capture.classes.fullscreen", c.Capture.Classes.Fullscreen},
		{"capture.classes.content", c.Capture.Classes.Content},
		{"capture.classes.down", c.Capture.Classes.Down},
		{"capture.classes.right", c.Capture.Classes.Right},
	}
	for _, cl := range classes {
		if err := validateFieldLength(cl.field, cl.value, MaxClassLength); err != nil {
			return err
		}
		if strings.ContainsAny(cl.value, " \t\n.#") {
			return fmt.Errorf("%w: %s %q (a single class name, no selector syntax)", ErrInvalidValue, cl.field, cl.value)
		}
	}

	switch strings.ToLower(c.PDF.Engine) {
	case "", EngineGofpdf, EnginePdfcpu:
		// valid
	default:
		return fmt.Errorf("%w: pdf.engine %q (must be gofpdf or pdfcpu)", ErrInvalidValue, c.PDF.Engine)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("%w: log rotation values must not be negative", ErrInvalidValue)
	}

	return nil
}

// SettleDelay returns capture.settle as a duration (0 if unset or invalid).
func (c *CaptureConfig) SettleDelay() time.Duration {
	d, _ := parseDuration("capture.settle", c.Settle)
	return d
}

// ElementWait returns capture.elementTimeout as a duration.
func (c *CaptureConfig) ElementWait() time.Duration {
	d, _ := parseDuration("capture.elementTimeout", c.ElementTimeout)
	return d
}

// PresentationTimeout returns capture.timeout as a duration. Zero means no timeout.
func (c *CaptureConfig) PresentationTimeout() time.Duration {
	d, _ := parseDuration("capture.timeout", c.Timeout)
	return d
}

// parseDuration parses a non-negative duration. Empty and "0" yield zero.
func parseDuration(field, value string) (time.Duration, error) {
	if err := validateFieldLength(field, value, MaxDurationLength); err != nil {
		return 0, err
	}
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, field, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s %q is negative", ErrInvalidValue, field, value)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// headless rod session at 1920x1080 without sandbox, slides.com class names,
// gofpdf engine.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{URLFile: DefaultURLFile},
		Output: OutputConfig{Dir: DefaultOutputDir},
		Browser: BrowserConfig{
			Driver:   DriverRod,
			Headless: true,
			Sandbox:  false,
			Width:    DefaultWidth,
			Height:   DefaultHeight,
		},
		Capture: CaptureConfig{
			Settle:         DefaultSettle,
			ElementTimeout: DefaultElementTimeout,
			Timeout:        DefaultTimeout,
			MaxSlides:      DefaultMaxSlides,
			Classes: ClassesConfig{
				Fullscreen: "fullscreen-button",
				Content:    "backgrounds",
				Down:       "navigate-down",
				Right:      "navigate-right",
			},
		},
		PDF: PDFConfig{Engine: EngineGofpdf},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
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

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-slides2pdf/
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// SearchPaths returns the candidate locations for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-slides2pdf", name+ext))
		}
	}

	return paths
}
