package slides2pdf

import (
	"log/slog"
	"time"
)

// Option configures a Capturer.
type Option func(*Capturer)

// capturerConfig holds internal configuration for Capturer.
type capturerConfig struct {
	driver         Driver
	engine         Engine
	session        SessionConfig
	classes        Classes
	settle         time.Duration
	elementTimeout time.Duration
	timeout        time.Duration
	maxSlides      int
	scratchDir     string
	logger         *slog.Logger
}

// Defaults used when no option overrides them.
const (
	DefaultSettleDelay    = time.Second
	DefaultElementTimeout = 10 * time.Second
	DefaultTimeout        = 10 * time.Minute
	DefaultMaxSlides      = 500
)

func defaultCapturerConfig() capturerConfig {
	return capturerConfig{
		driver:         DriverRod,
		engine:         EngineGofpdf,
		session:        DefaultSessionConfig(),
		classes:        DefaultClasses(),
		settle:         DefaultSettleDelay,
		elementTimeout: DefaultElementTimeout,
		timeout:        DefaultTimeout,
		maxSlides:      DefaultMaxSlides,
	}
}

// WithDriver selects the browser backend. Validated by NewCapturer.
func WithDriver(d Driver) Option {
	return func(c *Capturer) {
		c.cfg.driver = d
	}
}

// WithEngine selects the PDF writer. Validated by NewCapturer.
func WithEngine(e Engine) Option {
	return func(c *Capturer) {
		c.cfg.engine = e
	}
}

// WithSettleDelay sets the wait after each click for slide transitions.
// Zero disables it.
func WithSettleDelay(d time.Duration) Option {
	if d < 0 {
		panic("slides2pdf: WithSettleDelay duration must not be negative")
	}
	return func(c *Capturer) {
		c.cfg.settle = d
	}
}

// WithElementTimeout bounds the wait for the fullscreen control and the
// slide content element, and each click.
func WithElementTimeout(d time.Duration) Option {
	if d < 0 {
		panic("slides2pdf: WithElementTimeout duration must not be negative")
	}
	return func(c *Capturer) {
		c.cfg.elementTimeout = d
	}
}

// WithTimeout bounds one presentation from navigation to PDF. Zero disables it.
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("slides2pdf: WithTimeout duration must not be negative")
	}
	return func(c *Capturer) {
		c.cfg.timeout = d
	}
}

// WithMaxSlides caps the number of slides walked per presentation.
// Zero removes the cap.
func WithMaxSlides(n int) Option {
	if n < 0 {
		panic("slides2pdf: WithMaxSlides must not be negative")
	}
	return func(c *Capturer) {
		c.cfg.maxSlides = n
	}
}

// WithClasses overrides the control class names. Empty fields keep the default.
func WithClasses(classes Classes) Option {
	return func(c *Capturer) {
		c.cfg.classes = classes.merge(DefaultClasses())
	}
}

// WithBrowserBin sets the browser executable.
func WithBrowserBin(path string) Option {
	return func(c *Capturer) {
		c.cfg.session.Bin = path
	}
}

// WithHeadless toggles headless mode (default true).
func WithHeadless(headless bool) Option {
	return func(c *Capturer) {
		c.cfg.session.Headless = headless
	}
}

// WithSandbox enables the Chrome sandbox (default off).
func WithSandbox(sandbox bool) Option {
	return func(c *Capturer) {
		c.cfg.session.Sandbox = sandbox
	}
}

// WithWindowSize sets the browser viewport. Panics if either side is not positive.
func WithWindowSize(width, height int) Option {
	if width <= 0 || height <= 0 {
		panic("slides2pdf: WithWindowSize dimensions must be positive")
	}
	return func(c *Capturer) {
		c.cfg.session.Width = width
		c.cfg.session.Height = height
	}
}

// WithAutoDownload makes the rod driver download a compatible Chromium.
func WithAutoDownload(enabled bool) Option {
	return func(c *Capturer) {
		c.cfg.session.AutoDownload = enabled
	}
}

// WithScratchDir sets the parent of the per-presentation screenshot
// directories. Empty uses os.TempDir().
func WithScratchDir(dir string) Option {
	return func(c *Capturer) {
		c.cfg.scratchDir = dir
	}
}

// WithLogger sets the logger for progress and navigation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Capturer) {
		c.cfg.logger = logger
	}
}
