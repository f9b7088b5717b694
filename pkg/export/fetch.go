package export

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ImageFetcher resolves a page's image reference to raw bytes.
type ImageFetcher interface {
	Fetch(url string) ([]byte, error)
}

// DefaultFetcher downloads http(s) URLs and reads anything else from disk.
type DefaultFetcher struct {
	Client *http.Client
}

func NewFetcher() *DefaultFetcher {
	return &DefaultFetcher{Client: http.DefaultClient}
}

func (f *DefaultFetcher) Fetch(url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return os.ReadFile(url)
	}

	resp, err := f.Client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image content: %w", err)
	}
	return content, nil
}
