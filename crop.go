package slides2pdf

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropScreenshot decodes a PNG capture and crops it to box.
// Parts of the box outside the capture are clipped; a box that does not
// overlap the capture at all is an error.
func CropScreenshot(png []byte, box Box) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding screenshot: %v", ErrCrop, err)
	}

	rect := box.Rect()
	if rect.Empty() {
		return nil, fmt.Errorf("%w: empty box %v", ErrCrop, rect)
	}

	cropped := imaging.Crop(img, rect)
	if cropped.Bounds().Empty() {
		return nil, fmt.Errorf("%w: box %v outside capture %v", ErrCrop, rect, img.Bounds())
	}
	return cropped, nil
}

// saveSlide writes img as PNG to path.
func saveSlide(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// SlideFileName returns the screenshot name for a 1-indexed page.
func SlideFileName(page int) string {
	return fmt.Sprintf("screenshot_%02d.png", page)
}
