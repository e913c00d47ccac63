package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	slides2pdf "github.com/alnah/go-slides2pdf"
	"github.com/alnah/go-slides2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock capturer
// ---------------------------------------------------------------------------

// fakeCapturer records calls and returns canned results per URL.
type fakeCapturer struct {
	mu         sync.Mutex
	startErr   error
	fail       map[string]error
	noSlides   map[string]bool
	onCapture  func(url string)
	started    int
	captured   []string
	closeCalls int
}

func (f *fakeCapturer) Start(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
	return f.startErr
}

func (f *fakeCapturer) Capture(ctx context.Context, url, outputDir string) (*slides2pdf.Result, error) {
	f.mu.Lock()
	f.captured = append(f.captured, url)
	hook := f.onCapture
	err := f.fail[url]
	empty := f.noSlides[url]
	f.mu.Unlock()

	if hook != nil {
		hook(url)
	}
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &slides2pdf.Result{URL: url, Duration: 1500 * time.Millisecond}
	if !empty {
		res.Title = strings.TrimPrefix(url, "https://slides.com/")
		res.Output = filepath.Join(outputDir, slides2pdf.OutputName(res.Title, url)+".pdf")
		res.Pages = 3
	}
	return res, nil
}

func (f *fakeCapturer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	return nil
}

// factoryFor returns a CapturerFactory that always hands out fc and keeps
// the config it was built from.
func factoryFor(fc *fakeCapturer, got **config.Config) CapturerFactory {
	return func(cfg *config.Config, _ *slog.Logger) (CLICapturer, error) {
		if got != nil {
			*got = cfg
		}
		return fc, nil
	}
}

// testEnv returns an Environment writing to buffers.
func testEnv(factory CapturerFactory) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:         time.Now,
		Stdout:      &stdout,
		Stderr:      &stderr,
		Config:      config.DefaultConfig(),
		NewCapturer: factory,
	}, &stdout, &stderr
}

// writeURLFile writes lines to a URL list in a temp dir and returns its path.
func writeURLFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		t.Fatalf("writing URL file: %v", err)
	}
	return path
}
