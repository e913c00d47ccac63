package slides2pdf

// Notes:
// - Driver sessions need a real browser and are covered by the integration
//   tests; here only the shared polling, sleeping and bin resolution run.
// - TestResolveRodBin uses t.Setenv and cannot run in parallel.
// - TestNewRodSession_LaunchCanceled launches a shell script that never
//   prints a DevTools URL, so only the context can end the launch.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// appearingFinder reports the element after `after` lookups.
type appearingFinder struct {
	mu    sync.Mutex
	after int
	calls int
	err   error
}

func (f *appearingFinder) Find(context.Context, string) (Element, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.after >= 0 && f.calls > f.after {
		return &fakeElement{}, true, nil
	}
	return nil, false, f.err
}

// ---------------------------------------------------------------------------
// TestPollFor - Bounded readiness wait
// ---------------------------------------------------------------------------

func TestPollFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		finder    *appearingFinder
		timeout   time.Duration
		wantErr   error
		wantCalls int // 0 = don't check
	}{
		{
			name:      "present immediately",
			finder:    &appearingFinder{after: 0},
			timeout:   time.Second,
			wantCalls: 1,
		},
		{
			name:      "appears after a few polls",
			finder:    &appearingFinder{after: 3},
			timeout:   time.Second,
			wantCalls: 4,
		},
		{
			name:    "never appears",
			finder:  &appearingFinder{after: -1},
			timeout: 20 * time.Millisecond,
			wantErr: ErrElementNotFound,
		},
		{
			name:      "zero timeout is a single lookup",
			finder:    &appearingFinder{after: -1},
			timeout:   0,
			wantErr:   ErrElementNotFound,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			el, err := pollFor(context.Background(), tt.finder, "backgrounds", tt.timeout, time.Millisecond)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("pollFor() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil || el == nil {
				t.Errorf("pollFor() = %v, %v; want element", el, err)
			}
			if tt.wantCalls > 0 && tt.finder.calls != tt.wantCalls {
				t.Errorf("Find called %d times, want %d", tt.finder.calls, tt.wantCalls)
			}
		})
	}
}

func TestPollFor_KeepsLastLookupError(t *testing.T) {
	t.Parallel()

	f := &appearingFinder{after: -1, err: errors.New("execution context was destroyed")}
	_, err := pollFor(context.Background(), f, "navigate-down", 5*time.Millisecond, time.Millisecond)

	if !errors.Is(err, ErrElementNotFound) {
		t.Fatalf("error = %v, want ErrElementNotFound", err)
	}
	if !strings.Contains(err.Error(), "execution context was destroyed") || !strings.Contains(err.Error(), ".navigate-down") {
		t.Errorf("error %q should name the class and the lookup error", err)
	}
}

func TestPollFor_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pollFor(ctx, &appearingFinder{after: -1}, "x", time.Minute, time.Millisecond)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestSleepCtx - Settle delay honors cancellation
// ---------------------------------------------------------------------------

func TestSleepCtx(t *testing.T) {
	t.Parallel()

	if err := sleepCtx(context.Background(), 0); err != nil {
		t.Errorf("sleepCtx(0) = %v", err)
	}
	if err := sleepCtx(context.Background(), time.Millisecond); err != nil {
		t.Errorf("sleepCtx(1ms) = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := sleepCtx(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepCtx(canceled) = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("sleepCtx did not return promptly on cancel")
	}
}

// ---------------------------------------------------------------------------
// TestNewSession - Driver dispatch
// ---------------------------------------------------------------------------

func TestNewSession_InvalidDriver(t *testing.T) {
	t.Parallel()

	_, err := NewSession(context.Background(), Driver("webkit"), DefaultSessionConfig())
	if !errors.Is(err, ErrInvalidDriver) {
		t.Errorf("error = %v, want ErrInvalidDriver", err)
	}
}

func TestSessionConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	cfg := SessionConfig{}.withDefaults()
	if cfg.Width != 1920 || cfg.Height != 1080 {
		t.Errorf("window = %dx%d, want 1920x1080", cfg.Width, cfg.Height)
	}
	if cfg.Logger == nil {
		t.Error("Logger should default to the global logger")
	}

	def := DefaultSessionConfig()
	if !def.Headless || def.Sandbox {
		t.Errorf("DefaultSessionConfig() = %+v, want headless without sandbox", def)
	}
}

func TestResolveRodBin(t *testing.T) {
	t.Setenv("ROD_BROWSER_BIN", "/opt/chrome/chrome")

	bin, err := resolveRodBin(context.Background(), SessionConfig{Bin: "/usr/bin/chromium"})
	if err != nil || bin != "/usr/bin/chromium" {
		t.Errorf("explicit bin: got %q, %v", bin, err)
	}

	bin, err = resolveRodBin(context.Background(), SessionConfig{})
	if err != nil || bin != "/opt/chrome/chrome" {
		t.Errorf("env bin: got %q, %v", bin, err)
	}

	t.Setenv("ROD_BROWSER_BIN", "")
	bin, err = resolveRodBin(context.Background(), SessionConfig{})
	if err != nil || bin != "" {
		t.Errorf("lookup: got %q, %v; want empty", bin, err)
	}
}

func TestNewRodSession_LaunchCanceled(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("shell script browser stub")
	}

	bin := filepath.Join(t.TempDir(), "hung-chrome")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\nexec sleep 30\n"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg := DefaultSessionConfig()
	cfg.Bin = bin
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := newRodSession(ctx, cfg.withDefaults())
	if !errors.Is(err, ErrBrowserConnect) {
		t.Errorf("error = %v, want ErrBrowserConnect", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("launch took %v after the context ended", elapsed)
	}
}
