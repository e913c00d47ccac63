package slides2pdf

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/alnah/go-slides2pdf/internal/logging"
)

func init() {
	// Keep pdfcpu from creating its config directory under the user's home.
	api.DisableConfigDir()
}

// AssemblePDF writes images, one per page in order, to outputPath.
// Every page has the first image's pixel size (1px = 1pt), landscape, no
// margins. The images are deleted once the file is written; on failure they
// are kept and the error wraps ErrPDFGeneration. An empty list is logged and
// creates nothing.
func AssemblePDF(images []string, outputPath string, engine Engine) (int, error) {
	return assemblePDF(images, outputPath, engine, logging.L())
}

func assemblePDF(images []string, outputPath string, engine Engine, logger *slog.Logger) (int, error) {
	if len(images) == 0 {
		logger.Info("no screenshots to create a PDF", "output", outputPath)
		return 0, nil
	}

	first, err := imaging.Open(images[0])
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s: %v", ErrPDFGeneration, images[0], err)
	}
	width := float64(first.Bounds().Dx())
	height := float64(first.Bounds().Dy())

	switch engine {
	case "", EngineGofpdf:
		err = writeGofpdf(images, outputPath, width, height)
	case EnginePdfcpu:
		err = writePdfcpu(images, outputPath, width, height)
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEngine, engine)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	logger.Info("PDF created", "output", outputPath, "pages", len(images), "engine", engine)

	removeImages(images, logger)
	return len(images), nil
}

// writeGofpdf places each image at the top-left at page width.
func writeGofpdf(images []string, outputPath string, width, height float64) error {
	// Landscape swaps Wd and Ht, giving a width x height page.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: height, Ht: width},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for _, img := range images {
		pdf.AddPage()
		pdf.ImageOptions(img, 0, 0, width, 0, false, opts, 0, "")
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("adding %s: %w", img, err)
		}
	}

	return pdf.OutputFileAndClose(outputPath)
}

// writePdfcpu imports each image top-left onto a width x height page,
// scaled to fit the page.
func writePdfcpu(images []string, outputPath string, width, height float64) error {
	// ImportImagesFile appends to an existing file.
	if err := os.Remove(outputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	imp := pdfcpu.DefaultImportConfig()
	imp.PageDim = &types.Dim{Width: width, Height: height}
	imp.PageSize = ""
	imp.UserDim = true
	imp.Pos = types.TopLeft
	imp.Scale = 1

	return api.ImportImagesFile(images, outputPath, imp, model.NewDefaultConfiguration())
}

func removeImages(images []string, logger *slog.Logger) {
	for _, img := range images {
		if err := os.Remove(img); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("removing screenshot", "path", img, "error", err)
		}
	}
}
