package assembler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storyforge/pkg/data"
	"storyforge/pkg/generation"
)

const testPlaceholder = "https://example.com/placeholder.png"

type mockImageService struct {
	mu           sync.Mutex
	generateFunc func(prompt, styleHint string) (string, error)
	calls        int
}

func (m *mockImageService) GenerateImage(_ context.Context, prompt, styleHint string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.generateFunc != nil {
		return m.generateFunc(prompt, styleHint)
	}
	return "https://example.com/" + prompt + ".png", nil
}

type mockNarrationService struct {
	mu          sync.Mutex
	narrateFunc func(text, mood string) ([]byte, error)
	calls       map[string]int
}

func (m *mockNarrationService) Narrate(_ context.Context, text, mood string) ([]byte, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[text]++
	m.mu.Unlock()
	if m.narrateFunc != nil {
		return m.narrateFunc(text, mood)
	}
	return []byte("pcm:" + text), nil
}

func (m *mockNarrationService) attempts(text string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[text]
}

func fastRetry(attempts uint64) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, InitialDelay: time.Millisecond, Multiplier: 2}
}

func drafts(n int) []data.PageDraft {
	out := make([]data.PageDraft, n)
	for i := range out {
		out[i] = data.PageDraft{
			Text:        fmt.Sprintf("page %d text", i+1),
			ImagePrompt: fmt.Sprintf("prompt-%d", i+1),
		}
	}
	return out
}

func TestAssemblePreservesOrderAndLength(t *testing.T) {
	a := New(&mockImageService{}, &mockNarrationService{}, testPlaceholder, fastRetry(3), nil)
	defer a.Close()

	in := drafts(5)
	pages := a.Assemble(context.Background(), in, "fantasy", "calm")

	require.Len(t, pages, len(in))
	for i, page := range pages {
		require.Equal(t, in[i].Text, page.Text, "page %d out of order", i)
		require.Equal(t, "https://example.com/"+in[i].ImagePrompt+".png", page.ImageURL)
		require.True(t, page.HasAudio())
	}
}

func TestAssembleSubstitutesPlaceholderWhenImagesFail(t *testing.T) {
	images := &mockImageService{
		generateFunc: func(string, string) (string, error) {
			return "", errors.New("image service down")
		},
	}
	a := New(images, &mockNarrationService{}, testPlaceholder, fastRetry(1), nil)
	defer a.Close()

	pages := a.Assemble(context.Background(), drafts(3), "fantasy", "calm")

	require.Len(t, pages, 3)
	for _, page := range pages {
		require.NotEmpty(t, page.ImageURL)
		require.Equal(t, testPlaceholder, page.ImageURL)
	}
}

func TestAssembleNarrationFailureLeavesAudioAbsent(t *testing.T) {
	narration := &mockNarrationService{
		narrateFunc: func(string, string) ([]byte, error) {
			return nil, errors.New("tts unavailable")
		},
	}
	a := New(&mockImageService{}, narration, testPlaceholder, fastRetry(2), nil)
	defer a.Close()

	pages := a.Assemble(context.Background(), drafts(2), "fantasy", "calm")

	require.Len(t, pages, 2)
	for _, page := range pages {
		require.False(t, page.HasAudio())
		// Image assembly is unaffected by narration failure
		require.NotEmpty(t, page.ImageURL)
		require.NotEqual(t, testPlaceholder, page.ImageURL)
	}
}

func TestAssembleRateLimitOnOnePage(t *testing.T) {
	narration := &mockNarrationService{
		narrateFunc: func(text, _ string) ([]byte, error) {
			if text == "page 2 text" {
				return nil, fmt.Errorf("%w: try later", generation.ErrRateLimited)
			}
			return []byte("pcm:" + text), nil
		},
	}
	a := New(&mockImageService{}, narration, testPlaceholder, fastRetry(3), nil)
	defer a.Close()

	pages := a.Assemble(context.Background(), drafts(3), "fantasy", "calm")

	require.Len(t, pages, 3)
	require.True(t, pages[0].HasAudio())
	require.False(t, pages[1].HasAudio())
	require.True(t, pages[2].HasAudio())
	for _, page := range pages {
		require.NotEmpty(t, page.ImageURL)
	}

	// The rate-limited page used its full attempt budget, no more
	require.Equal(t, 3, narration.attempts("page 2 text"))
	require.Equal(t, 1, narration.attempts("page 1 text"))
}

func TestAssembleImageFailureDoesNotBlockNarration(t *testing.T) {
	images := &mockImageService{
		generateFunc: func(string, string) (string, error) {
			return "", errors.New("boom")
		},
	}
	a := New(images, &mockNarrationService{}, testPlaceholder, fastRetry(1), nil)
	defer a.Close()

	pages := a.Assemble(context.Background(), drafts(1), "fantasy", "calm")

	require.Equal(t, testPlaceholder, pages[0].ImageURL)
	require.True(t, pages[0].HasAudio())
}

func TestAssembleWithoutNarrationService(t *testing.T) {
	a := New(&mockImageService{}, nil, testPlaceholder, fastRetry(1), nil)
	defer a.Close()

	pages := a.Assemble(context.Background(), drafts(2), "fantasy", "calm")

	require.Len(t, pages, 2)
	for _, page := range pages {
		require.False(t, page.HasAudio())
		require.NotEmpty(t, page.ImageURL)
	}
}

func TestProgressIsMonotonicAndComplete(t *testing.T) {
	a := New(&mockImageService{}, &mockNarrationService{}, testPlaceholder, fastRetry(1), nil)

	total := 4
	a.Assemble(context.Background(), drafts(total), "fantasy", "calm")
	a.Close()

	var updates []Progress
	for p := range a.Progress() {
		updates = append(updates, p)
	}

	require.NotEmpty(t, updates)
	last := 0
	for _, p := range updates {
		require.Equal(t, total, p.Total)
		require.Greater(t, p.Completed, last, "progress must be monotonic")
		require.LessOrEqual(t, p.Completed, total)
		last = p.Completed
	}
	require.Equal(t, total, updates[len(updates)-1].Completed)
}

func TestAssembleEmptyDrafts(t *testing.T) {
	a := New(&mockImageService{}, &mockNarrationService{}, testPlaceholder, fastRetry(1), nil)
	defer a.Close()

	pages := a.Assemble(context.Background(), nil, "fantasy", "calm")
	require.Empty(t, pages)
}
