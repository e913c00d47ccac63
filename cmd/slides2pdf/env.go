package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	slides2pdf "github.com/alnah/go-slides2pdf"
	"github.com/alnah/go-slides2pdf/internal/config"
)

// CapturerFactory builds the capturer used by one batch.
type CapturerFactory func(cfg *config.Config, logger *slog.Logger) (CLICapturer, error)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and the capturer factory.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Config      *config.Config // Loaded once per run
	NewCapturer CapturerFactory
}

// DefaultEnv returns the production environment backed by a real browser.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Config:      config.DefaultConfig(),
		NewCapturer: newBrowserCapturer,
	}
}

// newBrowserCapturer maps a resolved config onto library options.
func newBrowserCapturer(cfg *config.Config, logger *slog.Logger) (CLICapturer, error) {
	return slides2pdf.NewCapturer(capturerOptions(cfg, logger)...)
}

// capturerOptions translates a validated config into capturer options.
func capturerOptions(cfg *config.Config, logger *slog.Logger) []slides2pdf.Option {
	opts := []slides2pdf.Option{
		slides2pdf.WithDriver(slides2pdf.Driver(cfg.Browser.Driver)),
		slides2pdf.WithEngine(slides2pdf.Engine(cfg.PDF.Engine)),
		slides2pdf.WithSettleDelay(cfg.Capture.SettleDelay()),
		slides2pdf.WithElementTimeout(cfg.Capture.ElementWait()),
		slides2pdf.WithTimeout(cfg.Capture.PresentationTimeout()),
		slides2pdf.WithMaxSlides(cfg.Capture.MaxSlides),
		slides2pdf.WithClasses(slides2pdf.Classes{
			Fullscreen: cfg.Capture.Classes.Fullscreen,
			Content:    cfg.Capture.Classes.Content,
			Down:       cfg.Capture.Classes.Down,
			Right:      cfg.Capture.Classes.Right,
		}),
		slides2pdf.WithBrowserBin(cfg.Browser.Bin),
		slides2pdf.WithHeadless(cfg.Browser.Headless),
		slides2pdf.WithSandbox(cfg.Browser.Sandbox),
		slides2pdf.WithAutoDownload(cfg.Browser.AutoDownload),
		slides2pdf.WithLogger(logger),
	}
	if cfg.Browser.Width > 0 && cfg.Browser.Height > 0 {
		opts = append(opts, slides2pdf.WithWindowSize(cfg.Browser.Width, cfg.Browser.Height))
	}
	return opts
}
