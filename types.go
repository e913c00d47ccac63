package slides2pdf

import (
	"fmt"
	"image"
	"math"
	"strings"
	"time"
)

// Box is an element's on-screen location and size in CSS pixels.
// With a device scale factor of 1 it shares the screenshot's pixel space.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Rect returns the box as (left, top, left+width, top+height), rounded to pixels.
func (b Box) Rect() image.Rectangle {
	left := int(math.Round(b.X))
	top := int(math.Round(b.Y))
	return image.Rect(left, top, left+int(math.Round(b.Width)), top+int(math.Round(b.Height)))
}

// Classes names the CSS classes that identify the presentation controls.
type Classes struct {
	Fullscreen string // Enters presentation mode
	Content    string // Slide area to crop to
	Down       string // Next vertical slide
	Right      string // Next horizontal slide
}

// DefaultClasses returns the class names used by reveal.js decks on slides.com.
func DefaultClasses() Classes {
	return Classes{
		Fullscreen: "fullscreen-button",
		Content:    "backgrounds",
		Down:       "navigate-down",
		Right:      "navigate-right",
	}
}

// merge fills empty fields from defaults.
func (c Classes) merge(defaults Classes) Classes {
	if c.Fullscreen == "" {
		c.Fullscreen = defaults.Fullscreen
	}
	if c.Content == "" {
		c.Content = defaults.Content
	}
	if c.Down == "" {
		c.Down = defaults.Down
	}
	if c.Right == "" {
		c.Right = defaults.Right
	}
	return c
}

// Driver selects the browser automation backend.
type Driver string

// Supported drivers.
const (
	DriverRod      Driver = "rod"
	DriverChromedp Driver = "chromedp"
)

// ParseDriver validates a driver name. Empty selects rod.
func ParseDriver(s string) (Driver, error) {
	switch Driver(strings.ToLower(strings.TrimSpace(s))) {
	case "", DriverRod:
		return DriverRod, nil
	case DriverChromedp:
		return DriverChromedp, nil
	default:
		return "", fmt.Errorf("%w: %q (must be rod or chromedp)", ErrInvalidDriver, s)
	}
}

// Engine selects the PDF writer.
type Engine string

// Supported engines.
const (
	EngineGofpdf Engine = "gofpdf"
	EnginePdfcpu Engine = "pdfcpu"
)

// ParseEngine validates an engine name. Empty selects gofpdf.
func ParseEngine(s string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(s))) {
	case "", EngineGofpdf:
		return EngineGofpdf, nil
	case EnginePdfcpu:
		return EnginePdfcpu, nil
	default:
		return "", fmt.Errorf("%w: %q (must be gofpdf or pdfcpu)", ErrInvalidEngine, s)
	}
}

// Result describes one captured presentation.
type Result struct {
	URL      string
	Title    string        // Raw page title
	Output   string        // PDF path, empty when no slides were captured
	Pages    int           // Pages written
	Duration time.Duration // Wall time for the whole capture
}
