package generation

import (
	"context"
	"errors"

	"storyforge/pkg/data"
)

// StoryRequest is the user's configuration for a story.
type StoryRequest struct {
	Genre     string
	Mood      string
	Style     string
	PlotHook  string
	PageCount int
	Cast      []data.CastMember
}

// StoryDraft is the content service's response: a title and exactly
// PageCount page drafts, none of which has media yet.
type StoryDraft struct {
	Title string
	Pages []data.PageDraft
}

// ContentService produces the story text. A malformed response is a hard
// error; callers never proceed with partial drafts.
type ContentService interface {
	GenerateStory(ctx context.Context, req StoryRequest) (*StoryDraft, error)
}

// ImageService produces one illustration URL for a page prompt.
type ImageService interface {
	GenerateImage(ctx context.Context, prompt, styleHint string) (string, error)
}

// NarrationService synthesizes speech for page text, returning raw
// little-endian 16-bit mono PCM at 24000 Hz.
type NarrationService interface {
	Narrate(ctx context.Context, text, mood string) ([]byte, error)
}

// ErrRateLimited marks a narration failure caused by service rate limiting.
// Callers may retry; the asset assembler eventually swallows it.
var ErrRateLimited = errors.New("narration service rate limited")

// ValidationError reports a content response that did not match the
// requested shape. It is fatal to the generation attempt.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid story response: " + e.Reason
}
