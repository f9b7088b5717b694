package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storyforge/pkg/assembler"
	"storyforge/pkg/data"
	"storyforge/pkg/generation"
)

// Repository is the persistence surface the story service needs.
type Repository interface {
	SaveStory(story *data.Story) error
	GetStory(id string) (*data.Story, error)
	ListStories() ([]*data.Story, error)
	DeleteStory(id string) error
	SetFavorite(id string, favorite bool) error
}

// StoryService runs the full manifestation pipeline: content generation,
// asset assembly, then a single persistence write. Validation and
// persistence failures are returned to the caller; per-asset failures are
// absorbed inside the assembler.
type StoryService struct {
	content generation.ContentService
	asm     *assembler.Assembler
	repo    Repository
	log     *logrus.Logger
}

func NewStoryService(content generation.ContentService, asm *assembler.Assembler, repo Repository, log *logrus.Logger) *StoryService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StoryService{content: content, asm: asm, repo: repo, log: log}
}

// Progress exposes the assembler's progress channel for UIs.
func (s *StoryService) Progress() <-chan assembler.Progress {
	return s.asm.Progress()
}

// CreateStory generates, assembles, and persists one story. No partial
// story is ever saved: a malformed content response aborts before assembly,
// and assembly itself cannot fail a page.
func (s *StoryService) CreateStory(ctx context.Context, req generation.StoryRequest) (*data.Story, error) {
	for i := range req.Cast {
		if req.Cast[i].ID == "" {
			req.Cast[i].ID = uuid.NewString()
		}
	}

	draft, err := s.content.GenerateStory(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"title": draft.Title, "pages": len(draft.Pages)}).
		Info("assembling story assets")

	pages := s.asm.Assemble(ctx, draft.Pages, req.Style, req.Mood)

	story := &data.Story{
		ID:        uuid.NewString(),
		Title:     draft.Title,
		Genre:     req.Genre,
		Mood:      req.Mood,
		Style:     req.Style,
		Plot:      req.PlotHook,
		Cast:      req.Cast,
		Pages:     pages,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.SaveStory(story); err != nil {
		return nil, fmt.Errorf("failed to persist story: %w", err)
	}

	s.log.WithField("id", story.ID).Info("story saved")
	return story, nil
}

// Close releases the assembler's progress channel.
func (s *StoryService) Close() {
	s.asm.Close()
}
