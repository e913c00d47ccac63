package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	slides2pdf "github.com/alnah/go-slides2pdf"
	"github.com/alnah/go-slides2pdf/internal/config"
	"github.com/alnah/go-slides2pdf/internal/fileutil"
	"github.com/alnah/go-slides2pdf/internal/hints"
	"github.com/alnah/go-slides2pdf/internal/logging"
)

// Sentinel errors for the capture command.
var (
	ErrReadURLList = errors.New("failed to read URL list")
	ErrLogSetup    = errors.New("failed to set up logging")
	ErrUsage       = errors.New("invalid usage")
)

// runCapture orchestrates the capture process.
func runCapture(ctx context.Context, positionalArgs []string, flags *captureFlags, env *Environment) error {
	if len(positionalArgs) > 1 {
		return fmt.Errorf("%w: expected at most one URL file, got %d arguments", ErrUsage, len(positionalArgs))
	}

	// Load configuration: flags > env > file > defaults
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	env.Config = cfg

	logger, closeLog, err := setupLogging(cfg, flags.common, env)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	// Resolve URL file
	urlFile := cfg.Input.URLFile
	if len(positionalArgs) == 1 {
		urlFile = positionalArgs[0]
	}

	urls, err := readURLFile(urlFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "No URLs in %s\n", urlFile)
		}
		return nil
	}

	if err := fileutil.EnsureDir(cfg.Output.Dir); err != nil {
		return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
	}

	newCapturer := env.NewCapturer
	if newCapturer == nil {
		newCapturer = newBrowserCapturer
	}
	capturer, err := newCapturer(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := capturer.Close(); err != nil {
			logger.Warn("closing browser", "err", err)
		}
	}()

	// The browser must be up before the first URL
	if err := capturer.Start(ctx); err != nil {
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect(cfg.Browser.Sandbox))
	}

	classes := slides2pdf.Classes{
		Fullscreen: cfg.Capture.Classes.Fullscreen,
		Content:    cfg.Capture.Classes.Content,
		Down:       cfg.Capture.Classes.Down,
		Right:      cfg.Capture.Classes.Right,
	}
	results := captureBatch(ctx, capturer, urls, cfg.Output.Dir, classes, logger)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d capture(s) failed", failedCount)
	}

	return nil
}

// loadConfig loads the config named by the flag, else by SLIDES2PDF_CONFIG,
// else returns defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *captureFlags, cfg *config.Config) {
	// I/O flags
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.engine != "" {
		cfg.PDF.Engine = flags.engine
	}

	// Timing flags
	if flags.timing.timeout != "" {
		cfg.Capture.Timeout = flags.timing.timeout
	}
	if flags.timing.settle != "" {
		cfg.Capture.Settle = flags.timing.settle
	}
	if flags.timing.elementTimeout != "" {
		cfg.Capture.ElementTimeout = flags.timing.elementTimeout
	}
	if flags.timing.maxSlides != maxSlidesUnset {
		cfg.Capture.MaxSlides = flags.timing.maxSlides
	}

	// Browser flags
	if flags.browser.driver != "" {
		cfg.Browser.Driver = flags.browser.driver
	}
	if flags.browser.bin != "" {
		cfg.Browser.Bin = flags.browser.bin
	}
	if flags.browser.headed {
		cfg.Browser.Headless = false
	}
	if flags.browser.sandbox {
		cfg.Browser.Sandbox = true
	}
	if flags.browser.autoDownload {
		cfg.Browser.AutoDownload = true
	}

	// Class flags
	if flags.classes.fullscreen != "" {
		cfg.Capture.Classes.Fullscreen = flags.classes.fullscreen
	}
	if flags.classes.content != "" {
		cfg.Capture.Classes.Content = flags.classes.content
	}
	if flags.classes.down != "" {
		cfg.Capture.Classes.Down = flags.classes.down
	}
	if flags.classes.right != "" {
		cfg.Capture.Classes.Right = flags.classes.right
	}

	// Log flags
	if flags.log.file != "" {
		cfg.Log.File = flags.log.file
	}
	if flags.log.level != "" {
		cfg.Log.Level = flags.log.level
	}
}

// setupLogging builds the run logger from the log section.
// --verbose forces debug; --quiet keeps only errors on stderr.
func setupLogging(cfg *config.Config, common commonFlags, env *Environment) (*slog.Logger, func() error, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
	}
	switch {
	case common.verbose:
		level = slog.LevelDebug
	case common.quiet && cfg.Log.File == "":
		level = slog.LevelError
	}

	logger, closeFn, err := logging.Setup(&logging.Config{
		Level:      level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}, env.Stderr)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrLogSetup, err)
	}
	return logger, closeFn, nil
}

// readURLFile reads the URL list, one URL per line.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided list
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadURLList, err)
	}
	defer func() { _ = f.Close() }()

	urls, err := slides2pdf.ReadURLList(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadURLList, path, err)
	}
	return urls, nil
}
