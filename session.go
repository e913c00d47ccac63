package slides2pdf

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-slides2pdf/internal/logging"
)

// Session is a single browser tab reused across presentations.
// Implementations are not safe for concurrent use.
type Session interface {
	// Navigate loads url and waits for the load event.
	Navigate(ctx context.Context, url string) error
	// Title returns the current document title.
	Title(ctx context.Context) (string, error)
	// Find looks up the first element with the given class without waiting.
	// A missing element is reported as ok == false with a nil error.
	Find(ctx context.Context, class string) (el Element, ok bool, err error)
	// WaitFor polls for an element until it appears or timeout elapses.
	WaitFor(ctx context.Context, class string, timeout time.Duration) (Element, error)
	// Screenshot captures the viewport as PNG bytes.
	Screenshot(ctx context.Context) ([]byte, error)
	// Close releases the browser. Safe to call more than once.
	Close() error
}

// Element is a handle to a DOM element in the session's page.
type Element interface {
	Box(ctx context.Context) (Box, error)
	Enabled(ctx context.Context) (bool, error)
	Click(ctx context.Context) error
}

// SessionConfig holds browser startup settings.
type SessionConfig struct {
	Bin          string // Browser executable; empty = ROD_BROWSER_BIN or lookup
	Headless     bool
	Sandbox      bool
	Width        int
	Height       int
	AutoDownload bool // rod only: use a downloaded Chromium instead of lookup
	Logger       *slog.Logger
}

// Default browser settings.
const (
	defaultWidth        = 1920
	defaultHeight       = 1080
	defaultPollInterval = 100 * time.Millisecond
)

// DefaultSessionConfig returns a headless 1920x1080 session without sandbox.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Headless: true,
		Width:    defaultWidth,
		Height:   defaultHeight,
	}
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if c.Logger == nil {
		c.Logger = logging.L()
	}
	return c
}

// NewSession starts a browser with the given driver.
// Startup failures wrap ErrBrowserConnect.
func NewSession(ctx context.Context, driver Driver, cfg SessionConfig) (Session, error) {
	cfg = cfg.withDefaults()
	switch driver {
	case "", DriverRod:
		return newRodSession(ctx, cfg)
	case DriverChromedp:
		return newChromedpSession(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDriver, driver)
	}
}

// finder is the immediate lookup both drivers share for WaitFor.
type finder interface {
	Find(ctx context.Context, class string) (Element, bool, error)
}

// pollFor calls Find every interval until the element appears, timeout
// elapses or ctx is done. A zero timeout means a single lookup.
func pollFor(ctx context.Context, f finder, class string, timeout, interval time.Duration) (Element, error) {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		el, ok, err := f.Find(ctx, class)
		if ok {
			return el, nil
		}
		if err != nil {
			lastErr = err
		}
		if timeout <= 0 {
			return nil, notFound(class, timeout, lastErr)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, notFound(class, timeout, lastErr)
		case <-ticker.C:
		}
	}
}

func notFound(class string, timeout time.Duration, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: .%s after %v: %v", ErrElementNotFound, class, timeout, cause)
	}
	return fmt.Errorf("%w: .%s after %v", ErrElementNotFound, class, timeout)
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
