package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

// Models selects which hosted models back each service.
type Models struct {
	Text   string
	Image  string
	Speech string
}

// Client implements ContentService, ImageService, and NarrationService over
// the OpenAI API.
type Client struct {
	opts   []option.RequestOption
	models Models
	log    *logrus.Logger
}

func NewClient(apiKey, baseURL string, models Models, log *logrus.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{opts: opts, models: models, log: log}, nil
}

// GenerateStory requests title and page drafts in one structured call.
// The response shape is validated strictly; a mismatch fails the whole
// generation attempt.
func (c *Client) GenerateStory(ctx context.Context, req StoryRequest) (*StoryDraft, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.models.Text),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(storySystemPrompt),
			openai.UserMessage(buildStoryPrompt(req)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("story generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ValidationError{Reason: "empty choices"}
	}

	draft, err := parseStoryResponse(resp.Choices[0].Message.Content, req.PageCount)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{"title": draft.Title, "pages": len(draft.Pages)}).
		Debug("story draft generated")
	return draft, nil
}

// GenerateImage requests one illustration and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, prompt, styleHint string) (string, error) {
	client := openai.NewClient(c.opts...)

	fullPrompt := prompt
	if styleHint != "" {
		fullPrompt = fmt.Sprintf("%s, in a %s style", prompt, styleHint)
	}

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:          openai.ImageModel(c.models.Image),
		Prompt:         fullPrompt,
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize1024x1024,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("image generation returned no image")
	}
	return resp.Data[0].URL, nil
}

// Narrate synthesizes speech for one page of text. The PCM response format
// is raw little-endian 16-bit mono samples at 24000 Hz. A 429 from the
// service is reported as ErrRateLimited so the retry policy can see it.
func (c *Client) Narrate(ctx context.Context, text, mood string) ([]byte, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(c.models.Speech),
		Input:          text,
		Voice:          voiceForMood(mood),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) && apierr.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return nil, fmt.Errorf("narration failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read narration payload: %w", err)
	}
	return payload, nil
}

// voiceForMood picks a narration voice matching the story's mood.
func voiceForMood(mood string) openai.AudioSpeechNewParamsVoice {
	switch mood {
	case "whimsical", "funny":
		return openai.AudioSpeechNewParamsVoiceBallad
	case "cheerful", "uplifting":
		return openai.AudioSpeechNewParamsVoiceCoral
	case "spooky", "mysterious":
		return openai.AudioSpeechNewParamsVoiceSage
	case "calm", "gentle":
		return openai.AudioSpeechNewParamsVoiceShimmer
	case "adventurous", "exciting":
		return openai.AudioSpeechNewParamsVoiceEcho
	default:
		return openai.AudioSpeechNewParamsVoiceAlloy
	}
}
