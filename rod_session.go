package slides2pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-slides2pdf/internal/process"
)

// Compile-time interface checks
var (
	_ Session = (*rodSession)(nil)
	_ Element = (*rodElement)(nil)
)

// rodSession implements Session with go-rod.
type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	logger   *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// resolveRodBin picks the browser executable: explicit bin, ROD_BROWSER_BIN,
// a downloaded Chromium when autoDownload is set, or "" to let rod look it up.
func resolveRodBin(ctx context.Context, cfg SessionConfig) (string, error) {
	if cfg.Bin != "" {
		return cfg.Bin, nil
	}
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, nil
	}
	if cfg.AutoDownload {
		b := launcher.NewBrowser()
		b.Context = ctx
		return b.Get()
	}
	return "", nil
}

func newRodSession(ctx context.Context, cfg SessionConfig) (*rodSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bin, err := resolveRodBin(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: downloading browser: %v", ErrBrowserConnect, err)
	}

	// ctx bounds the launch only; the browser process is not tied to it.
	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		NoSandbox(!cfg.Sandbox).
		Set("disable-gpu").
		Set("window-size", strconv.Itoa(cfg.Width)+","+strconv.Itoa(cfg.Height))
	if bin != "" {
		l = l.Bin(bin)
	}

	u, err := l.Launch()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrBrowserConnect, ctxErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	s := &rodSession{launcher: l, logger: cfg.Logger}
	cfg.Logger.Debug("browser launched", "driver", DriverRod, "pid", l.PID(), "bin", bin)

	s.browser = rod.New().ControlURL(u)
	if err := s.browser.Connect(); err != nil {
		s.browser = nil
		_ = s.Close()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: creating page: %v", ErrBrowserConnect, err)
	}
	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.Width,
		Height:            cfg.Height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrBrowserConnect, err)
	}
	s.page = page

	return s, nil
}

func (s *rodSession) open() (*rod.Page, error) {
	if s.page == nil {
		return nil, ErrSessionClosed
	}
	return s.page, nil
}

func (s *rodSession) Navigate(ctx context.Context, url string) error {
	page, err := s.open()
	if err != nil {
		return err
	}
	p := page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPageLoad, url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPageLoad, url, err)
	}
	return nil
}

func (s *rodSession) Title(ctx context.Context) (string, error) {
	page, err := s.open()
	if err != nil {
		return "", err
	}
	info, err := page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("reading page title: %w", err)
	}
	return info.Title, nil
}

func (s *rodSession) Find(ctx context.Context, class string) (Element, bool, error) {
	page, err := s.open()
	if err != nil {
		return nil, false, err
	}
	has, el, err := page.Context(ctx).Has("." + class)
	if err != nil {
		return nil, false, err
	}
	if !has {
		return nil, false, nil
	}
	return &rodElement{el: el}, true, nil
}

func (s *rodSession) WaitFor(ctx context.Context, class string, timeout time.Duration) (Element, error) {
	return pollFor(ctx, s, class, timeout, defaultPollInterval)
}

func (s *rodSession) Screenshot(ctx context.Context) ([]byte, error) {
	page, err := s.open()
	if err != nil {
		return nil, err
	}
	png, err := page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return png, nil
}

// Close closes the browser, killing its process group if a graceful close fails.
func (s *rodSession) Close() error {
	s.closeOnce.Do(func() {
		s.page = nil
		if s.browser != nil {
			s.closeErr = s.browser.Close()
			s.browser = nil
		}
		if s.launcher == nil {
			return
		}
		if s.closeErr != nil {
			s.logger.Warn("browser close failed, killing process group", "pid", s.launcher.PID(), "error", s.closeErr)
			process.KillProcessGroup(s.launcher.PID())
		}
		s.launcher.Kill()
		s.launcher.Cleanup()
	})
	return s.closeErr
}

// rodElement implements Element with a rod element handle.
type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Box(ctx context.Context) (Box, error) {
	shape, err := e.el.Context(ctx).Shape()
	if err != nil {
		return Box{}, fmt.Errorf("reading element box: %w", err)
	}
	rect := shape.Box()
	if rect == nil {
		return Box{}, fmt.Errorf("%w: element has no layout box", ErrElementNotFound)
	}
	return Box{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height}, nil
}

func (e *rodElement) Enabled(ctx context.Context) (bool, error) {
	disabled, err := e.el.Context(ctx).Attribute("disabled")
	if err != nil {
		return false, err
	}
	return disabled == nil, nil
}

func (e *rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}
