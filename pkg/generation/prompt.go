package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"storyforge/pkg/data"
)

const storySystemPrompt = `You are a children's storybook author. You write short, vivid,
age-appropriate stories and describe one illustration per page.
Respond with JSON only, no prose and no markdown fences, in this shape:
{"title": "...", "pages": [{"text": "...", "imagePrompt": "..."}]}
Each page's "text" is 2-4 sentences of story. Each "imagePrompt" describes
the illustration for that page in one sentence, naming the characters present.`

func buildStoryPrompt(req StoryRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s story with a %s mood, exactly %d pages.\n", req.Genre, req.Mood, req.PageCount)
	if req.Style != "" {
		fmt.Fprintf(&b, "Illustration prompts should suit a %s art style.\n", req.Style)
	}
	if len(req.Cast) > 0 {
		b.WriteString("Cast:\n")
		for _, member := range req.Cast {
			fmt.Fprintf(&b, "- %s (%s)\n", member.Name, member.Role)
		}
	}
	if req.PlotHook != "" {
		fmt.Fprintf(&b, "Plot: %s\n", req.PlotHook)
	}
	return b.String()
}

type storyResponse struct {
	Title string `json:"title"`
	Pages []struct {
		Text        string `json:"text"`
		ImagePrompt string `json:"imagePrompt"`
	} `json:"pages"`
}

// stripFences removes a surrounding markdown code fence if the model added
// one despite instructions.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseStoryResponse decodes and validates the model output. Any shape
// mismatch is a ValidationError: the story is unusable and nothing
// downstream should run.
func parseStoryResponse(raw string, pageCount int) (*StoryDraft, error) {
	var resp storyResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("not valid JSON: %v", err)}
	}

	if resp.Title == "" {
		return nil, &ValidationError{Reason: "missing title"}
	}
	if len(resp.Pages) != pageCount {
		return nil, &ValidationError{Reason: fmt.Sprintf("expected %d pages, got %d", pageCount, len(resp.Pages))}
	}

	draft := &StoryDraft{Title: resp.Title}
	for i, page := range resp.Pages {
		if strings.TrimSpace(page.Text) == "" {
			return nil, &ValidationError{Reason: fmt.Sprintf("page %d has no text", i+1)}
		}
		if strings.TrimSpace(page.ImagePrompt) == "" {
			return nil, &ValidationError{Reason: fmt.Sprintf("page %d has no image prompt", i+1)}
		}
		draft.Pages = append(draft.Pages, data.PageDraft{
			Text:        page.Text,
			ImagePrompt: page.ImagePrompt,
		})
	}
	return draft, nil
}
