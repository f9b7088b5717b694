package generation

import (
	"errors"
	"strings"
	"testing"

	openai "github.com/openai/openai-go"

	"storyforge/pkg/data"
)

func TestBuildStoryPrompt(t *testing.T) {
	req := StoryRequest{
		Genre:     "fantasy",
		Mood:      "whimsical",
		Style:     "watercolor",
		PlotHook:  "a dragon who collects teacups",
		PageCount: 3,
		Cast: []data.CastMember{
			{Name: "Pip", Role: "dragon"},
			{Name: "Greta", Role: "potter"},
		},
	}

	prompt := buildStoryPrompt(req)

	for _, want := range []string{"fantasy", "whimsical", "exactly 3 pages", "watercolor", "Pip (dragon)", "Greta (potter)", "a dragon who collects teacups"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q:\n%s", want, prompt)
		}
	}
}

func TestParseStoryResponse(t *testing.T) {
	raw := `{"title": "Pip's Teacups", "pages": [
		{"text": "Pip loved teacups.", "imagePrompt": "a small dragon with teacups"},
		{"text": "One day a cup cracked.", "imagePrompt": "a cracked teacup"}
	]}`

	draft, err := parseStoryResponse(raw, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if draft.Title != "Pip's Teacups" {
		t.Errorf("Expected title, got %q", draft.Title)
	}
	if len(draft.Pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(draft.Pages))
	}
	if draft.Pages[1].ImagePrompt != "a cracked teacup" {
		t.Errorf("Pages out of order or mangled: %+v", draft.Pages)
	}
}

func TestParseStoryResponseStripsFences(t *testing.T) {
	raw := "```json\n{\"title\": \"T\", \"pages\": [{\"text\": \"a\", \"imagePrompt\": \"b\"}]}\n```"

	draft, err := parseStoryResponse(raw, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if draft.Title != "T" {
		t.Errorf("Expected title T, got %q", draft.Title)
	}
}

func TestParseStoryResponseValidation(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		pageCount int
	}{
		{"not json", "once upon a time", 3},
		{"empty pages", `{"title": "X", "pages": []}`, 5},
		{"wrong count", `{"title": "X", "pages": [{"text": "a", "imagePrompt": "b"}]}`, 2},
		{"missing title", `{"pages": [{"text": "a", "imagePrompt": "b"}]}`, 1},
		{"blank text", `{"title": "X", "pages": [{"text": " ", "imagePrompt": "b"}]}`, 1},
		{"missing image prompt", `{"title": "X", "pages": [{"text": "a", "imagePrompt": ""}]}`, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseStoryResponse(tc.raw, tc.pageCount)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestVoiceForMoodIsTotal(t *testing.T) {
	// Unknown moods still get a voice
	if voiceForMood("unheard-of") == "" {
		t.Error("Expected a default voice for unknown moods")
	}
	if voiceForMood("spooky") == voiceForMood("cheerful") {
		t.Error("Expected distinct voices for distinct moods")
	}
}

func TestVoiceForMoodUsesSupportedVoices(t *testing.T) {
	supported := map[openai.AudioSpeechNewParamsVoice]bool{
		openai.AudioSpeechNewParamsVoiceAlloy:   true,
		openai.AudioSpeechNewParamsVoiceAsh:     true,
		openai.AudioSpeechNewParamsVoiceBallad:  true,
		openai.AudioSpeechNewParamsVoiceCoral:   true,
		openai.AudioSpeechNewParamsVoiceEcho:    true,
		openai.AudioSpeechNewParamsVoiceSage:    true,
		openai.AudioSpeechNewParamsVoiceShimmer: true,
		openai.AudioSpeechNewParamsVoiceVerse:   true,
	}

	moods := []string{
		"whimsical", "funny", "cheerful", "uplifting", "spooky",
		"mysterious", "calm", "gentle", "adventurous", "exciting", "",
	}
	for _, mood := range moods {
		if voice := voiceForMood(mood); !supported[voice] {
			t.Errorf("Mood %q maps to unsupported voice %q", mood, voice)
		}
	}
}
