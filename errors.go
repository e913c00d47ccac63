package slides2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrBrowserConnect  = errors.New("failed to start browser")
	ErrSessionClosed   = errors.New("browser session is closed")
	ErrPageLoad        = errors.New("failed to load page")
	ErrElementNotFound = errors.New("element not found")
	ErrScreenshot      = errors.New("screenshot failed")
	ErrCrop            = errors.New("crop failed")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrSlideLimit      = errors.New("slide limit exceeded")

	// Input validation errors.
	ErrEmptyURL      = errors.New("URL cannot be empty")
	ErrInvalidURL    = errors.New("invalid URL")
	ErrInvalidDriver = errors.New("invalid browser driver")
	ErrInvalidEngine = errors.New("invalid PDF engine")
)
