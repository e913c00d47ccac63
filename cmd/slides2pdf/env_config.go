package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-slides2pdf/internal/config"
)

// envPrefix marks the environment variables this tool reads.
const envPrefix = "SLIDES2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // SLIDES2PDF_CONFIG: config file path
	URLFile    string // SLIDES2PDF_URL_FILE: URL list file
	OutputDir  string // SLIDES2PDF_OUTPUT_DIR: output directory
	Timeout    string // SLIDES2PDF_TIMEOUT: per-presentation timeout

	// Tier 2 - Browser and PDF
	Driver     string // SLIDES2PDF_DRIVER: rod, chromedp
	Engine     string // SLIDES2PDF_ENGINE: gofpdf, pdfcpu
	BrowserBin string // SLIDES2PDF_BROWSER_BIN: Chrome executable
	MaxSlides  int    // SLIDES2PDF_MAX_SLIDES: slide cap, -1 when unset

	// Tier 3 - Logging
	LogFile  string // SLIDES2PDF_LOG_FILE: rotating log file
	LogLevel string // SLIDES2PDF_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid SLIDES2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"SLIDES2PDF_CONFIG":     true,
	"SLIDES2PDF_URL_FILE":   true,
	"SLIDES2PDF_OUTPUT_DIR": true,
	"SLIDES2PDF_TIMEOUT":    true,
	// Tier 2 - Browser and PDF
	"SLIDES2PDF_DRIVER":      true,
	"SLIDES2PDF_ENGINE":      true,
	"SLIDES2PDF_BROWSER_BIN": true,
	"SLIDES2PDF_MAX_SLIDES":  true,
	// Tier 3 - Logging
	"SLIDES2PDF_LOG_FILE":  true,
	"SLIDES2PDF_LOG_LEVEL": true,
	// Read by doctor
	"SLIDES2PDF_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized SLIDES2PDF_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("SLIDES2PDF_CONFIG"),
		URLFile:    os.Getenv("SLIDES2PDF_URL_FILE"),
		OutputDir:  os.Getenv("SLIDES2PDF_OUTPUT_DIR"),
		Timeout:    os.Getenv("SLIDES2PDF_TIMEOUT"),
		Driver:     os.Getenv("SLIDES2PDF_DRIVER"),
		Engine:     os.Getenv("SLIDES2PDF_ENGINE"),
		BrowserBin: os.Getenv("SLIDES2PDF_BROWSER_BIN"),
		MaxSlides:  maxSlidesUnset,
		LogFile:    os.Getenv("SLIDES2PDF_LOG_FILE"),
		LogLevel:   os.Getenv("SLIDES2PDF_LOG_LEVEL"),
	}

	// Parse int for slide cap; invalid values are ignored
	if v := os.Getenv("SLIDES2PDF_MAX_SLIDES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxSlides = n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized SLIDES2PDF_* variables.
// Helps catch typos like SLIDES2PDF_OUTPUT instead of SLIDES2PDF_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1 - I/O and timeout
	if env.URLFile != "" {
		cfg.Input.URLFile = env.URLFile
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Timeout != "" {
		cfg.Capture.Timeout = env.Timeout
	}

	// Tier 2 - Browser and PDF
	if env.Driver != "" {
		cfg.Browser.Driver = env.Driver
	}
	if env.Engine != "" {
		cfg.PDF.Engine = env.Engine
	}
	if env.BrowserBin != "" {
		cfg.Browser.Bin = env.BrowserBin
	}
	if env.MaxSlides != maxSlidesUnset {
		cfg.Capture.MaxSlides = env.MaxSlides
	}

	// Tier 3 - Logging
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}
