package slides2pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
)

// Compile-time interface checks
var (
	_ Session = (*chromedpSession)(nil)
	_ Element = (*chromedpElement)(nil)
)

// chromedpRunner runs actions against a chromedp context.
type chromedpRunner func(ctx context.Context, actions ...chromedp.Action) error

// chromedpSession implements Session with chromedp.
// The first Run allocates the browser on the tab context itself, so the
// browser lives until Close. Later calls derive a child context that is
// canceled with the caller's ctx; canceling it never closes the tab.
type chromedpSession struct {
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc
	runner      chromedpRunner
	logger      *slog.Logger

	mu     sync.Mutex
	closed bool
}

// chromedpAllocatorOptions builds exec allocator flags from cfg.
func chromedpAllocatorOptions(cfg SessionConfig) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(cfg.Width, cfg.Height),
	)
	if !cfg.Sandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	bin := cfg.Bin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}
	return opts
}

func newChromedpSession(ctx context.Context, cfg SessionConfig) (*chromedpSession, error) {
	return startChromedpSession(ctx, cfg, chromedp.Run)
}

func startChromedpSession(ctx context.Context, cfg SessionConfig, runner chromedpRunner) (*chromedpSession, error) {
	if cfg.AutoDownload {
		cfg.Logger.Warn("auto-download is only supported by the rod driver, using installed browser")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), chromedpAllocatorOptions(cfg)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	s := &chromedpSession{
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		allocCancel: allocCancel,
		runner:      runner,
		logger:      cfg.Logger,
	}

	if err := s.start(ctx, chromedp.EmulateViewport(int64(cfg.Width), int64(cfg.Height))); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: %w", ErrBrowserConnect, err)
	}
	cfg.Logger.Debug("browser launched", "driver", DriverChromedp, "bin", cfg.Bin)

	return s, nil
}

// start runs the first actions directly on the tab context, which allocates
// the browser. ctx bounds startup only: when it ends first, the tab is
// canceled and the browser stops with it.
func (s *chromedpSession) start(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, s.tabCancel)
	err := s.runner(s.tabCtx, actions...)
	if !stop() {
		return ctx.Err()
	}
	return err
}

// run executes actions on the tab, aborting when ctx is done.
func (s *chromedpSession) run(ctx context.Context, actions ...chromedp.Action) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}

	runCtx, cancel := context.WithCancel(s.tabCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := s.runner(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *chromedpSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		if errors.Is(err, ErrSessionClosed) || ctx.Err() != nil {
			return err
		}
		return fmt.Errorf("%w: %s: %v", ErrPageLoad, url, err)
	}
	return nil
}

func (s *chromedpSession) Title(ctx context.Context) (string, error) {
	var title string
	if err := s.run(ctx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("reading page title: %w", err)
	}
	return title, nil
}

func (s *chromedpSession) Find(ctx context.Context, class string) (Element, bool, error) {
	var nodes []*cdp.Node
	err := s.run(ctx, chromedp.Nodes("."+class, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)))
	if err != nil {
		return nil, false, err
	}
	if len(nodes) == 0 {
		return nil, false, nil
	}
	return &chromedpElement{s: s, node: nodes[0]}, true, nil
}

func (s *chromedpSession) WaitFor(ctx context.Context, class string, timeout time.Duration) (Element, error) {
	return pollFor(ctx, s, class, timeout, defaultPollInterval)
}

func (s *chromedpSession) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := s.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return buf, nil
}

// Close closes the tab and shuts the browser down.
func (s *chromedpSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	err := chromedp.Cancel(s.tabCtx)
	s.tabCancel()
	s.allocCancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// chromedpElement implements Element with a cdp node.
type chromedpElement struct {
	s    *chromedpSession
	node *cdp.Node
}

func (e *chromedpElement) ids() []cdp.NodeID {
	return []cdp.NodeID{e.node.NodeID}
}

func (e *chromedpElement) Box(ctx context.Context) (Box, error) {
	var model *dom.BoxModel
	if err := e.s.run(ctx, chromedp.Dimensions(e.ids(), &model, chromedp.ByNodeID)); err != nil {
		return Box{}, fmt.Errorf("reading element box: %w", err)
	}
	if model == nil || len(model.Border) < 2 {
		return Box{}, fmt.Errorf("%w: element has no layout box", ErrElementNotFound)
	}
	return Box{
		X:      model.Border[0],
		Y:      model.Border[1],
		Width:  float64(model.Width),
		Height: float64(model.Height),
	}, nil
}

func (e *chromedpElement) Enabled(_ context.Context) (bool, error) {
	_, disabled := e.node.Attribute("disabled")
	return !disabled, nil
}

func (e *chromedpElement) Click(ctx context.Context) error {
	return e.s.run(ctx, chromedp.Click(e.ids(), chromedp.ByNodeID))
}
