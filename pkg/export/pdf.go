package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"

	"storyforge/pkg/data"
)

// A4 portrait layout, in millimeters.
const (
	pageWidth     = 210.0
	pageMargin    = 20.0
	imageRegionH  = 140.0
	imagePixelCap = 1024
)

// PDFExporter serializes a story into a paginated PDF: one title page, then
// one image-over-text page per story page. Unreadable image data degrades
// to a framed blank region; export never aborts because of a single page.
type PDFExporter struct {
	fetcher ImageFetcher
	log     *logrus.Logger
}

func NewPDFExporter(fetcher ImageFetcher, log *logrus.Logger) *PDFExporter {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PDFExporter{fetcher: fetcher, log: log}
}

// Export writes the story PDF into outputDir and returns its path.
func (e *PDFExporter) Export(story *data.Story, outputDir string) (string, error) {
	if story == nil {
		return "", fmt.Errorf("story cannot be nil")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	pdf := e.build(story)

	outputPath := filepath.Join(outputDir, sanitizeFilename(story.Title)+".pdf")
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}
	return outputPath, nil
}

func (e *PDFExporter) build(story *data.Story) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(story.Title, true)
	// The footer sits below the default break trigger; pages are added
	// explicitly, one per story page.
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title page
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetY(90)
	pdf.MultiCell(0, 14, tr(story.Title), "", "C", false)
	pdf.SetFont("Helvetica", "I", 13)
	pdf.Ln(6)
	subtitle := fmt.Sprintf("A %s story", story.Genre)
	if story.Mood != "" {
		subtitle = fmt.Sprintf("A %s %s story", story.Mood, story.Genre)
	}
	pdf.MultiCell(0, 8, tr(subtitle), "", "C", false)

	// One page per story page: image region on top, text below
	for i, page := range story.Pages {
		pdf.AddPage()
		e.drawImageRegion(pdf, page, i)

		pdf.SetY(pageMargin + imageRegionH + 12)
		pdf.SetFont("Helvetica", "", 13)
		pdf.MultiCell(0, 7, tr(page.Text), "", "L", false)

		pdf.SetY(-18)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d", i+1), "", 0, "C", false, 0, "")
	}

	return pdf
}

// drawImageRegion renders the page's illustration, or a blank frame when
// the image cannot be fetched or decoded.
func (e *PDFExporter) drawImageRegion(pdf *fpdf.Fpdf, page data.Page, index int) {
	regionW := pageWidth - 2*pageMargin

	raw, err := e.fetcher.Fetch(page.ImageURL)
	if err == nil {
		var fitted []byte
		var w, h int
		fitted, w, h, err = fitImage(raw, imagePixelCap, imagePixelCap)
		if err == nil {
			// Scale pixel dimensions into the mm region
			drawW := regionW
			drawH := drawW * float64(h) / float64(w)
			if drawH > imageRegionH {
				drawH = imageRegionH
				drawW = drawH * float64(w) / float64(h)
			}
			x := pageMargin + (regionW-drawW)/2

			name := fmt.Sprintf("story-page-%d", index)
			opts := fpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(fitted))
			pdf.ImageOptions(name, x, pageMargin, drawW, drawH, false, opts, 0, "")
			return
		}
	}

	e.log.WithFields(logrus.Fields{"page": index + 1, "error": err}).
		Warn("image unavailable for export, rendering blank region")

	pdf.SetFillColor(238, 238, 238)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(pageMargin, pageMargin, regionW, imageRegionH, "FD")
}
