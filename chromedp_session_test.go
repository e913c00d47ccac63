package slides2pdf

// Notes:
// - No browser is started: NewExecAllocator only launches Chrome on the
//   first Run, and these tests replace chromedp.Run with a recorder.
// - What matters is which context each Run receives. The browser is bound
//   to the context of the first Run, so that one must outlive startup.

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/alnah/go-slides2pdf/internal/logging"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// recordingRunner keeps the context of every Run call.
type recordingRunner struct {
	mu    sync.Mutex
	ctxs  []context.Context
	block bool // wait for ctx to end before returning
}

func (r *recordingRunner) run(ctx context.Context, _ ...chromedp.Action) error {
	r.mu.Lock()
	r.ctxs = append(r.ctxs, ctx)
	r.mu.Unlock()
	if r.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (r *recordingRunner) calls() []context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]context.Context(nil), r.ctxs...)
}

func chromedpTestConfig() SessionConfig {
	return SessionConfig{Headless: true, Width: 800, Height: 600, Logger: logging.Discard()}
}

// ---------------------------------------------------------------------------
// TestStartChromedpSession - Browser context outlives startup
// ---------------------------------------------------------------------------

func TestStartChromedpSession_BrowserContextOutlivesStartup(t *testing.T) {
	t.Parallel()

	r := &recordingRunner{}
	ctx, cancel := context.WithCancel(context.Background())
	s, err := startChromedpSession(ctx, chromedpTestConfig(), r.run)
	if err != nil {
		t.Fatalf("startChromedpSession() error = %v", err)
	}
	defer func() { _ = s.Close() }()

	calls := r.calls()
	if len(calls) != 1 {
		t.Fatalf("startup runs = %d, want 1", len(calls))
	}
	browserCtx := calls[0]
	if browserCtx != s.tabCtx {
		t.Error("startup should run on the tab context that owns the browser")
	}
	if err := browserCtx.Err(); err != nil {
		t.Fatalf("browser context ended after startup: %v", err)
	}

	// The startup ctx ending later must not stop the browser.
	cancel()
	time.Sleep(20 * time.Millisecond)
	if err := browserCtx.Err(); err != nil {
		t.Errorf("browser context ended with the startup ctx: %v", err)
	}
}

func TestStartChromedpSession_LaterCallsUseChildContext(t *testing.T) {
	t.Parallel()

	r := &recordingRunner{}
	s, err := startChromedpSession(context.Background(), chromedpTestConfig(), r.run)
	if err != nil {
		t.Fatalf("startChromedpSession() error = %v", err)
	}

	if _, err := s.Title(context.Background()); err != nil {
		t.Fatalf("Title() error = %v", err)
	}

	calls := r.calls()
	if len(calls) != 2 {
		t.Fatalf("runs = %d, want 2", len(calls))
	}
	if calls[1] == s.tabCtx {
		t.Error("later calls should run on a derived context")
	}
	if calls[1].Err() == nil {
		t.Error("per-call context should be released when the call returns")
	}
	if err := s.tabCtx.Err(); err != nil {
		t.Errorf("tab context ended after a call: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if s.tabCtx.Err() == nil {
		t.Error("Close() should end the tab context")
	}
	if _, err := s.Title(context.Background()); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Title() after Close error = %v, want ErrSessionClosed", err)
	}
}

func TestStartChromedpSession_StartupCanceled(t *testing.T) {
	t.Parallel()

	r := &recordingRunner{block: true}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := startChromedpSession(ctx, chromedpTestConfig(), r.run)
	if !errors.Is(err, ErrBrowserConnect) {
		t.Errorf("error = %v, want ErrBrowserConnect", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}

	calls := r.calls()
	if len(calls) != 1 {
		t.Fatalf("startup runs = %d, want 1", len(calls))
	}
	if calls[0].Err() == nil {
		t.Error("a canceled startup should stop the browser context")
	}
}

func TestStartChromedpSession_AlreadyCanceled(t *testing.T) {
	t.Parallel()

	r := &recordingRunner{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := startChromedpSession(ctx, chromedpTestConfig(), r.run)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if n := len(r.calls()); n != 0 {
		t.Errorf("runs = %d, want 0", n)
	}
}
