package slides2pdf

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
)

// walker drives one presentation: it enters fullscreen, then captures a
// slide, tries down, then right, until neither control can be clicked.
type walker struct {
	session        Session
	classes        Classes
	settle         time.Duration
	elementTimeout time.Duration
	maxSlides      int
	dir            string
	logger         *slog.Logger
	sleep          func(context.Context, time.Duration) error
}

// walk returns the saved slide paths in capture order. On error the paths
// saved so far are returned as well.
func (w *walker) walk(ctx context.Context) ([]string, error) {
	if err := w.sleep(ctx, w.settle); err != nil {
		return nil, err
	}

	fullscreen, err := w.session.WaitFor(ctx, w.classes.Fullscreen, w.elementTimeout)
	if err != nil {
		return nil, fmt.Errorf("fullscreen control: %w", err)
	}
	if err := w.click(ctx, fullscreen); err != nil {
		return nil, fmt.Errorf("clicking fullscreen control: %w", err)
	}
	if err := w.sleep(ctx, w.settle); err != nil {
		return nil, err
	}

	var paths []string
	for page := 1; ; page++ {
		if w.maxSlides > 0 && page > w.maxSlides {
			return paths, fmt.Errorf("%w: deck still navigable after %d slides", ErrSlideLimit, w.maxSlides)
		}

		path, err := w.captureSlide(ctx, page)
		if err != nil {
			return paths, fmt.Errorf("slide %d: %w", page, err)
		}
		paths = append(paths, path)
		w.logger.Debug("saved slide", "page", page, "path", path)

		moved, err := w.advance(ctx, w.classes.Down, "down")
		if err != nil {
			return paths, err
		}
		if moved {
			continue
		}
		moved, err = w.advance(ctx, w.classes.Right, "right")
		if err != nil {
			return paths, err
		}
		if !moved {
			return paths, nil
		}
	}
}

// captureSlide screenshots the viewport, crops it to the content element
// and saves it as the page's slide file.
func (w *walker) captureSlide(ctx context.Context, page int) (string, error) {
	content, err := w.session.WaitFor(ctx, w.classes.Content, w.elementTimeout)
	if err != nil {
		return "", fmt.Errorf("content element: %w", err)
	}
	box, err := content.Box(ctx)
	if err != nil {
		return "", err
	}

	png, err := w.session.Screenshot(ctx)
	if err != nil {
		return "", err
	}
	img, err := CropScreenshot(png, box)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, SlideFileName(page))
	if err := saveSlide(img, path); err != nil {
		return "", err
	}
	return path, nil
}

// advance clicks the navigation control with the given class if it is
// present and enabled. Lookup, state and click failures are logged and
// treated as an absent control; only context errors are returned.
func (w *walker) advance(ctx context.Context, class, direction string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	el, ok, err := w.session.Find(ctx, class)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		w.logger.Warn("navigation lookup failed", "direction", direction, "error", err)
		return false, nil
	}
	if !ok {
		w.logger.Debug("navigation control absent", "direction", direction)
		return false, nil
	}

	enabled, err := el.Enabled(ctx)
	if err != nil {
		w.logger.Warn("navigation state unreadable", "direction", direction, "error", err)
		return false, nil
	}
	if !enabled {
		return false, nil
	}

	if err := w.click(ctx, el); err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		w.logger.Warn("navigation click failed", "direction", direction, "error", err)
		return false, nil
	}
	if err := w.sleep(ctx, w.settle); err != nil {
		return false, err
	}
	return true, nil
}

// click bounds the click by the element timeout.
func (w *walker) click(ctx context.Context, el Element) error {
	if w.elementTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.elementTimeout)
		defer cancel()
	}
	return el.Click(ctx)
}
