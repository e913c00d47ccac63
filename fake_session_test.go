package slides2pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// ---------------------------------------------------------------------------
// Fake Session
// ---------------------------------------------------------------------------

// fakeDeck is a reveal.js-like deck: columns[i] vertical slides in column i.
type fakeDeck struct {
	title   string
	columns []int
	endless bool // "right" never disables
}

// fakeSession simulates a browser tab showing fakeDecks.
type fakeSession struct {
	mu sync.Mutex

	decks   map[string]fakeDeck
	classes Classes

	// Failure injection.
	missing       map[string]bool  // class -> absent from the page
	findErr       map[string]error // class -> lookup error
	clickErr      map[string]error // class -> click error
	screenshotErr map[string]error // url -> screenshot error
	navigateErr   error

	// Viewport and slide area.
	width, height int
	box           Box

	// Current state.
	url        string
	fullscreen bool
	h, v       int

	// Recorded calls.
	navigated  []string
	visits     []string // "h.v" per screenshot
	closeCalls int
	closed     bool
}

func newFakeSession(decks map[string]fakeDeck) *fakeSession {
	return &fakeSession{
		decks:         decks,
		classes:       DefaultClasses(),
		missing:       map[string]bool{},
		findErr:       map[string]error{},
		clickErr:      map[string]error{},
		screenshotErr: map[string]error{},
		width:         200,
		height:        100,
		box:           Box{X: 20, Y: 10, Width: 160, Height: 80},
	}
}

var _ Session = (*fakeSession)(nil)

func (s *fakeSession) deck() fakeDeck {
	return s.decks[s.url]
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.navigated = append(s.navigated, url)
	if s.navigateErr != nil {
		return s.navigateErr
	}
	if _, ok := s.decks[url]; !ok {
		return fmt.Errorf("%w: %s: 404", ErrPageLoad, url)
	}
	s.url, s.fullscreen, s.h, s.v = url, false, 0, 0
	return ctx.Err()
}

func (s *fakeSession) Title(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck().title, nil
}

func (s *fakeSession) Find(ctx context.Context, class string) (Element, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := s.findErr[class]; err != nil {
		return nil, false, err
	}
	if s.missing[class] {
		return nil, false, nil
	}
	return &fakeElement{s: s, class: class}, true, nil
}

func (s *fakeSession) WaitFor(ctx context.Context, class string, timeout time.Duration) (Element, error) {
	return pollFor(ctx, s, class, timeout, time.Millisecond)
}

func (s *fakeSession) Screenshot(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.screenshotErr[s.url]; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	s.visits = append(s.visits, fmt.Sprintf("%d.%d", s.h, s.v))
	return solidPNG(s.width, s.height, color.NRGBA{R: uint8(s.h * 40), G: uint8(s.v * 40), B: 200, A: 255}), nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCalls++
	s.closed = true
	return nil
}

// fakeElement is a control or the slide area of a fakeSession.
type fakeElement struct {
	s     *fakeSession
	class string
}

func (e *fakeElement) Box(context.Context) (Box, error) {
	return e.s.box, nil
}

func (e *fakeElement) Enabled(context.Context) (bool, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	d := e.s.deck()
	switch e.class {
	case e.s.classes.Down:
		return e.s.h < len(d.columns) && e.s.v < d.columns[e.s.h]-1, nil
	case e.s.classes.Right:
		return d.endless || e.s.h < len(d.columns)-1, nil
	default:
		return true, nil
	}
}

func (e *fakeElement) Click(ctx context.Context) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if err := e.s.clickErr[e.class]; err != nil {
		return err
	}
	switch e.class {
	case e.s.classes.Fullscreen:
		e.s.fullscreen = true
	case e.s.classes.Down:
		e.s.v++
	case e.s.classes.Right:
		if e.s.h < len(e.s.deck().columns)-1 {
			e.s.h++
		}
		e.s.v = 0
	}
	return ctx.Err()
}

// solidPNG encodes a w x h image of a single color.
func solidPNG(w, h int, c color.Color) []byte {
	return encodePNG(imaging.New(w, h, c))
}

// encodePNG encodes img as PNG bytes.
func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// writePNG saves a w x h image to path.
func writePNG(path string, w, h int) error {
	return imaging.Save(imaging.New(w, h, color.White), path)
}

// noSleep skips settle delays but still honors cancellation.
func noSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// recordSleep counts settle delays.
type recordSleep struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (r *recordSleep) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.calls = append(r.calls, d)
	r.mu.Unlock()
	return ctx.Err()
}
