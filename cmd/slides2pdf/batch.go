package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	slides2pdf "github.com/alnah/go-slides2pdf"
	"github.com/alnah/go-slides2pdf/internal/hints"
	"github.com/alnah/go-slides2pdf/internal/logging"
)

// CLICapturer is the interface for the capture service.
type CLICapturer interface {
	Start(ctx context.Context) error
	Capture(ctx context.Context, url, outputDir string) (*slides2pdf.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ CLICapturer = (*slides2pdf.Capturer)(nil)

// CaptureResult holds the outcome of a single presentation.
type CaptureResult struct {
	URL        string
	OutputPath string // Empty when the deck had no slides
	Pages      int
	Err        error
	Duration   time.Duration
}

// captureBatch processes urls one at a time, in order, over one capturer.
// A failed URL is logged and the batch moves on. Once ctx is done, the
// remaining URLs are reported with the context error.
func captureBatch(ctx context.Context, c CLICapturer, urls []string, outputDir string, classes slides2pdf.Classes, logger *slog.Logger) []CaptureResult {
	results := make([]CaptureResult, len(urls))
	ctx = logging.With(ctx, logger)

	for i, url := range urls {
		if ctx.Err() != nil {
			results[i] = CaptureResult{URL: url, Err: ctx.Err()}
			continue
		}

		urlCtx := logging.WithAttrs(ctx, "url", url)
		log := logging.From(urlCtx)

		log.Info("capturing presentation", "index", i+1, "total", len(urls))
		results[i] = captureOne(urlCtx, c, url, outputDir)
		if err := results[i].Err; err != nil {
			log.Error("capture failed", "err", err)
			results[i].Err = withHint(err, classes)
		}
	}

	return results
}

// captureOne processes a single URL and returns the result.
func captureOne(ctx context.Context, c CLICapturer, url, outputDir string) CaptureResult {
	start := time.Now()
	result := CaptureResult{URL: url}

	res, err := c.Capture(ctx, url, outputDir)
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err
		return result
	}

	result.OutputPath = res.Output
	result.Pages = res.Pages
	if res.Duration > 0 {
		result.Duration = res.Duration
	}
	return result
}

// withHint appends an actionable hint for the failures users can fix.
func withHint(err error, classes slides2pdf.Classes) error {
	var hint string
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, slides2pdf.ErrSlideLimit):
		hint = hints.ForSlideLimit()
	case errors.Is(err, slides2pdf.ErrElementNotFound):
		hint = hints.ForElementNotFound(missingClass(err, classes))
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// missingClass returns which of the required controls an element error names.
func missingClass(err error, classes slides2pdf.Classes) string {
	msg := err.Error()
	for _, class := range []string{classes.Fullscreen, classes.Content} {
		if class != "" && strings.Contains(msg, "."+class+" ") {
			return class
		}
	}
	return ""
}

// printResultsWithWriter outputs capture results using the provided writers.
// Returns the number of failed presentations.
func printResultsWithWriter(results []CaptureResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.URL, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		switch {
		case r.OutputPath == "":
			fmt.Fprintf(env.Stdout, "No slides in %s\n", r.URL)
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.URL, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
