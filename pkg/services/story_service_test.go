package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"storyforge/pkg/assembler"
	"storyforge/pkg/data"
	"storyforge/pkg/generation"
)

// Mock implementations for testing

type mockContentService struct {
	generateFunc func(req generation.StoryRequest) (*generation.StoryDraft, error)
}

func (m *mockContentService) GenerateStory(_ context.Context, req generation.StoryRequest) (*generation.StoryDraft, error) {
	if m.generateFunc != nil {
		return m.generateFunc(req)
	}
	draft := &generation.StoryDraft{Title: "Test Story"}
	for i := 0; i < req.PageCount; i++ {
		draft.Pages = append(draft.Pages, data.PageDraft{Text: "text", ImagePrompt: "prompt"})
	}
	return draft, nil
}

type mockImageService struct{}

func (m *mockImageService) GenerateImage(_ context.Context, prompt, _ string) (string, error) {
	return "https://example.com/" + prompt + ".png", nil
}

type mockNarrationService struct{}

func (m *mockNarrationService) Narrate(_ context.Context, text, _ string) ([]byte, error) {
	return []byte("pcm:" + text), nil
}

type mockRepository struct {
	saveFunc func(story *data.Story) error
	saved    []*data.Story
}

func (m *mockRepository) SaveStory(story *data.Story) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(story); err != nil {
			return err
		}
	}
	m.saved = append(m.saved, story)
	return nil
}

func (m *mockRepository) GetStory(string) (*data.Story, error) { return nil, nil }
func (m *mockRepository) ListStories() ([]*data.Story, error)  { return m.saved, nil }
func (m *mockRepository) DeleteStory(string) error             { return nil }
func (m *mockRepository) SetFavorite(string, bool) error       { return nil }

func testService(content generation.ContentService, repo Repository) *StoryService {
	asm := assembler.New(&mockImageService{}, &mockNarrationService{}, "https://example.com/placeholder.png",
		assembler.RetryPolicy{MaxAttempts: 1, InitialDelay: time.Millisecond, Multiplier: 2}, nil)
	return NewStoryService(content, asm, repo, nil)
}

func TestCreateStoryPersistsCompleteStory(t *testing.T) {
	repo := &mockRepository{}
	svc := testService(&mockContentService{}, repo)
	defer svc.Close()

	req := generation.StoryRequest{
		Genre:     "fantasy",
		Mood:      "calm",
		Style:     "watercolor",
		PlotHook:  "a quiet adventure",
		PageCount: 3,
		Cast:      []data.CastMember{{Name: "Pip", Role: "dragon"}},
	}

	story, err := svc.CreateStory(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if story.ID == "" {
		t.Error("Expected story to have an ID")
	}
	if story.Title != "Test Story" {
		t.Errorf("Expected title from draft, got %q", story.Title)
	}
	if len(story.Pages) != 3 {
		t.Fatalf("Expected 3 pages, got %d", len(story.Pages))
	}
	for i, page := range story.Pages {
		if page.ImageURL == "" {
			t.Errorf("Page %d has empty ImageURL", i)
		}
		if !page.HasAudio() {
			t.Errorf("Page %d missing audio", i)
		}
	}
	if story.Cast[0].ID == "" {
		t.Error("Expected cast member to receive an ID")
	}

	if len(repo.saved) != 1 {
		t.Fatalf("Expected 1 saved story, got %d", len(repo.saved))
	}
}

func TestCreateStoryValidationFailureDoesNotPersist(t *testing.T) {
	content := &mockContentService{
		generateFunc: func(generation.StoryRequest) (*generation.StoryDraft, error) {
			return nil, &generation.ValidationError{Reason: "expected 5 pages, got 0"}
		},
	}
	repo := &mockRepository{}
	svc := testService(content, repo)
	defer svc.Close()

	_, err := svc.CreateStory(context.Background(), generation.StoryRequest{PageCount: 5})
	if err == nil {
		t.Fatal("Expected error")
	}

	var verr *generation.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError, got %T", err)
	}

	if len(repo.saved) != 0 {
		t.Errorf("Expected no story persisted, got %d", len(repo.saved))
	}
}

func TestCreateStoryPersistenceFailurePropagates(t *testing.T) {
	repo := &mockRepository{
		saveFunc: func(*data.Story) error {
			return errors.New("disk full")
		},
	}
	svc := testService(&mockContentService{}, repo)
	defer svc.Close()

	_, err := svc.CreateStory(context.Background(), generation.StoryRequest{PageCount: 2})
	if err == nil {
		t.Fatal("Expected persistence error to propagate")
	}
	if len(repo.saved) != 0 {
		t.Errorf("Expected no story recorded, got %d", len(repo.saved))
	}
}

func TestCreateStoryProgressReachesTotal(t *testing.T) {
	repo := &mockRepository{}
	svc := testService(&mockContentService{}, repo)

	story, err := svc.CreateStory(context.Background(), generation.StoryRequest{PageCount: 4})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	svc.Close()

	last := assembler.Progress{}
	for p := range svc.Progress() {
		if p.Completed > p.Total {
			t.Errorf("Progress %d exceeds total %d", p.Completed, p.Total)
		}
		last = p
	}
	if last.Completed != len(story.Pages) {
		t.Errorf("Expected final progress %d, got %d", len(story.Pages), last.Completed)
	}
}
