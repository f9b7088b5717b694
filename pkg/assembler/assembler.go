package assembler

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"storyforge/pkg/data"
	"storyforge/pkg/generation"
)

// Progress reports how many pages have had their assets resolved. Counts
// are monotonic and never exceed Total. The signal is observational only;
// updates are dropped rather than blocking assembly.
type Progress struct {
	Completed int
	Total     int
}

// imageResult is the outcome of one image request. There is no failure
// variant: a failed request resolves to the placeholder URL.
type imageResult struct {
	url         string
	substituted bool
}

// audioResult is the outcome of one narration request. ok=false means the
// page stays silent; it is never an error to the caller.
type audioResult struct {
	payload []byte
	ok      bool
}

// Assembler resolves an image and an optional narration clip for every page
// draft. One page's failure never aborts its siblings: images degrade to a
// placeholder, narration degrades to silence.
type Assembler struct {
	images         generation.ImageService
	narration      generation.NarrationService
	placeholderURL string
	retry          RetryPolicy
	progressChan   chan Progress
	closeOnce      sync.Once
	log            *logrus.Logger
}

func New(images generation.ImageService, narration generation.NarrationService, placeholderURL string, retry RetryPolicy, log *logrus.Logger) *Assembler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Assembler{
		images:         images,
		narration:      narration,
		placeholderURL: placeholderURL,
		retry:          retry,
		progressChan:   make(chan Progress, 100),
		log:            log,
	}
}

// Progress returns the channel carrying assembly progress updates.
func (a *Assembler) Progress() <-chan Progress {
	return a.progressChan
}

// Assemble resolves media for each draft and returns the assembled pages in
// draft order. The image and narration requests for one page run
// concurrently with each other; pages are processed in sequence. Every
// returned page has a non-empty ImageURL.
func (a *Assembler) Assemble(ctx context.Context, drafts []data.PageDraft, style, mood string) []data.Page {
	total := len(drafts)
	pages := make([]data.Page, total)

	for i, draft := range drafts {
		imgCh := make(chan imageResult, 1)
		audCh := make(chan audioResult, 1)

		go func(prompt string, page int) {
			imgCh <- a.resolveImage(ctx, prompt, style, page)
		}(draft.ImagePrompt, i)

		go func(text string, page int) {
			audCh <- a.resolveAudio(ctx, text, mood, page)
		}(draft.Text, i)

		img := <-imgCh
		aud := <-audCh

		page := data.Page{
			Text:        draft.Text,
			ImagePrompt: draft.ImagePrompt,
			ImageURL:    img.url,
		}
		if aud.ok {
			page.AudioData = aud.payload
		}
		pages[i] = page

		a.sendProgress(Progress{Completed: i + 1, Total: total})
	}

	return pages
}

// resolveImage requests one illustration. Failure is swallowed here: the
// page gets the deterministic placeholder instead.
func (a *Assembler) resolveImage(ctx context.Context, prompt, style string, page int) imageResult {
	url, err := a.images.GenerateImage(ctx, prompt, style)
	if err != nil || url == "" {
		a.log.WithFields(logrus.Fields{"page": page + 1, "error": err}).
			Warn("image generation failed, substituting placeholder")
		return imageResult{url: a.placeholderURL, substituted: true}
	}
	return imageResult{url: url}
}

// resolveAudio requests narration under the retry policy. Once the budget
// is spent the failure is swallowed and the page is left without audio.
func (a *Assembler) resolveAudio(ctx context.Context, text, mood string, page int) audioResult {
	if a.narration == nil {
		return audioResult{}
	}

	var payload []byte
	err := a.retry.Run(ctx, func() error {
		p, err := a.narration.Narrate(ctx, text, mood)
		if err != nil {
			return err
		}
		payload = p
		return nil
	})
	if err != nil {
		entry := a.log.WithFields(logrus.Fields{"page": page + 1, "error": err})
		if errors.Is(err, generation.ErrRateLimited) {
			entry.Warn("narration rate limited, page will have no audio")
		} else {
			entry.Warn("narration failed, page will have no audio")
		}
		return audioResult{}
	}
	return audioResult{payload: payload, ok: true}
}

// sendProgress delivers a progress update without blocking.
func (a *Assembler) sendProgress(p Progress) {
	select {
	case a.progressChan <- p:
	default:
		// Nobody is listening fast enough; dropping is fine.
	}
}

// Close closes the progress channel once assembly is finished.
func (a *Assembler) Close() {
	a.closeOnce.Do(func() {
		close(a.progressChan)
	})
}
