package export

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/sirupsen/logrus"

	"storyforge/pkg/data"
)

// EPUBExporter serializes a story into an EPUB with one section per page.
// Like the PDF exporter, a missing illustration degrades to text-only.
type EPUBExporter struct {
	fetcher ImageFetcher
	log     *logrus.Logger
}

func NewEPUBExporter(fetcher ImageFetcher, log *logrus.Logger) *EPUBExporter {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &EPUBExporter{fetcher: fetcher, log: log}
}

// Export writes the story EPUB into outputDir and returns its path.
func (e *EPUBExporter) Export(story *data.Story, outputDir string) (string, error) {
	if story == nil {
		return "", fmt.Errorf("story cannot be nil")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	book, err := epub.NewEpub(story.Title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	book.SetAuthor("storyforge")
	if story.Plot != "" {
		book.SetDescription(story.Plot)
	}
	book.SetLang("en")

	// Images must exist as files for go-epub; stage them in a temp dir
	tmpDir, err := os.MkdirTemp("", "storyforge-epub-*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	for i, page := range story.Pages {
		var content strings.Builder
		fmt.Fprintf(&content, "<h2>Page %d</h2>\n", i+1)

		if internalPath := e.stageImage(book, tmpDir, page, i); internalPath != "" {
			fmt.Fprintf(&content,
				`<div class="illustration"><img src="%s" alt="Page %d illustration" style="width:100%%;height:auto;"/></div>%s`,
				internalPath, i+1, "\n")
		}

		fmt.Fprintf(&content, "<p>%s</p>\n", html.EscapeString(page.Text))

		if _, err := book.AddSection(content.String(), fmt.Sprintf("Page %d", i+1), "", ""); err != nil {
			return "", fmt.Errorf("failed to add page %d: %w", i+1, err)
		}
	}

	outputPath := filepath.Join(outputDir, sanitizeFilename(story.Title)+".epub")
	if err := book.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

// stageImage fetches, fits, and registers a page illustration, returning
// its internal EPUB path or "" when the page goes without one.
func (e *EPUBExporter) stageImage(book *epub.Epub, tmpDir string, page data.Page, index int) string {
	raw, err := e.fetcher.Fetch(page.ImageURL)
	if err == nil {
		var fitted []byte
		fitted, _, _, err = fitImage(raw, imagePixelCap, imagePixelCap)
		if err == nil {
			imgPath := filepath.Join(tmpDir, fmt.Sprintf("page-%d.png", index+1))
			if err = os.WriteFile(imgPath, fitted, 0644); err == nil {
				internalPath, addErr := book.AddImage(imgPath, "")
				if addErr == nil {
					return internalPath
				}
				err = addErr
			}
		}
	}

	e.log.WithFields(logrus.Fields{"page": index + 1, "error": err}).
		Warn("image unavailable for export, page will be text-only")
	return ""
}
