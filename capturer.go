package slides2pdf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-slides2pdf/internal/fileutil"
	"github.com/alnah/go-slides2pdf/internal/logging"
)

// scratchPattern names the per-presentation screenshot directory.
const scratchPattern = "slides2pdf-*"

// Capturer turns presentation URLs into PDFs over one browser session.
// Create with NewCapturer, call Capture per URL, and Close when done.
// A Capturer processes one presentation at a time.
type Capturer struct {
	cfg capturerConfig

	mu      sync.Mutex
	session Session
	closed  bool

	// Test hooks.
	newSession func(context.Context, Driver, SessionConfig) (Session, error)
	sleep      func(context.Context, time.Duration) error
	now        func() time.Time
}

// NewCapturer creates a Capturer. The browser starts on Start or on the
// first Capture.
func NewCapturer(opts ...Option) (*Capturer, error) {
	c := &Capturer{
		cfg:        defaultCapturerConfig(),
		newSession: NewSession,
		sleep:      sleepCtx,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	driver, err := ParseDriver(string(c.cfg.driver))
	if err != nil {
		return nil, err
	}
	c.cfg.driver = driver

	engine, err := ParseEngine(string(c.cfg.engine))
	if err != nil {
		return nil, err
	}
	c.cfg.engine = engine

	if c.cfg.logger == nil {
		c.cfg.logger = c.cfg.session.Logger
	}
	if c.cfg.logger == nil {
		c.cfg.logger = logging.L()
	}
	c.cfg.session.Logger = c.cfg.logger

	return c, nil
}

// Start launches the browser session if it is not running yet.
// Failures wrap ErrBrowserConnect.
func (c *Capturer) Start(ctx context.Context) error {
	_, err := c.ensureSession(ctx)
	return err
}

func (c *Capturer) ensureSession(ctx context.Context) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrSessionClosed
	}
	if c.session != nil {
		return c.session, nil
	}

	s, err := c.newSession(ctx, c.cfg.driver, c.cfg.session)
	if err != nil {
		if errors.Is(err, ErrBrowserConnect) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	c.session = s
	return s, nil
}

// Capture walks the presentation at url and writes outputDir/<title>.pdf.
// The screenshots live in a scratch directory that is removed on every
// exit path. A deck without a single slide yields a Result with no Output.
func (c *Capturer) Capture(ctx context.Context, url, outputDir string) (*Result, error) {
	if err := ValidateURL(url); err != nil {
		return nil, err
	}

	session, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	start := c.now()
	logger := c.cfg.logger.With("url", url)

	if err := fileutil.EnsureDir(outputDir); err != nil {
		return nil, err
	}

	scratch, cleanup, err := fileutil.ScratchDir(c.cfg.scratchDir, scratchPattern)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := session.Navigate(ctx, url); err != nil {
		return nil, err
	}

	w := &walker{
		session:        session,
		classes:        c.cfg.classes,
		settle:         c.cfg.settle,
		elementTimeout: c.cfg.elementTimeout,
		maxSlides:      c.cfg.maxSlides,
		dir:            scratch,
		logger:         logger,
		sleep:          c.sleep,
	}
	slides, err := w.walk(ctx)
	if err != nil {
		return nil, err
	}

	title, err := session.Title(ctx)
	if err != nil {
		return nil, err
	}

	output := filepath.Join(outputDir, OutputName(title, url)+".pdf")
	pages, err := assemblePDF(slides, output, c.cfg.engine, logger)
	if err != nil {
		return nil, err
	}
	if pages == 0 {
		output = ""
	}

	return &Result{
		URL:      url,
		Title:    title,
		Output:   output,
		Pages:    pages,
		Duration: c.now().Sub(start),
	}, nil
}

// Close releases the browser session. Safe to call more than once.
func (c *Capturer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	return err
}
