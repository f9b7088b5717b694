package services

import (
	"time"

	"github.com/sirupsen/logrus"

	"storyforge/pkg/assembler"
	"storyforge/pkg/config"
	"storyforge/pkg/data"
	"storyforge/pkg/export"
	"storyforge/pkg/generation"
)

// Controller wires the repository, generative services, assembler, and
// exporters from one config. CLI commands and the TUI both start here.
type Controller struct {
	Config  *config.Config
	Repo    *data.Repository
	Stories *StoryService
	PDF     *export.PDFExporter
	EPUB    *export.EPUBExporter
	Log     *logrus.Logger
}

func NewController(cfg *config.Config) (*Controller, error) {
	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	repo, err := data.OpenRepository(cfg.DatabasePath())
	if err != nil {
		return nil, err
	}

	client, err := generation.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, generation.Models{
		Text:   cfg.OpenAI.TextModel,
		Image:  cfg.OpenAI.ImageModel,
		Speech: cfg.OpenAI.SpeechModel,
	}, log)
	if err != nil {
		repo.Close()
		return nil, err
	}

	var narrator generation.NarrationService
	if cfg.Generation.NarrationEnabled {
		narrator = client
	}

	asm := assembler.New(client, narrator, cfg.Generation.PlaceholderImageURL, assembler.RetryPolicy{
		MaxAttempts:  uint64(cfg.Generation.NarrationMaxAttempts),
		InitialDelay: time.Duration(cfg.Generation.NarrationBackoffMS) * time.Millisecond,
		Multiplier:   2,
	}, log)

	fetcher := export.NewFetcher()

	return &Controller{
		Config:  cfg,
		Repo:    repo,
		Stories: NewStoryService(client, asm, repo, log),
		PDF:     export.NewPDFExporter(fetcher, log),
		EPUB:    export.NewEPUBExporter(fetcher, log),
		Log:     log,
	}, nil
}

func (c *Controller) Close() {
	c.Stories.Close()
	c.Repo.Close()
}
