package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"storyforge/pkg/app/styles"
	"storyforge/pkg/data"
	"storyforge/pkg/narration"
	"storyforge/pkg/services"
)

// ReaderScreen is the book view: one page at a time, with narration
// playback bound to the visible page. Turning a page or leaving the view
// always stops playback first.
type ReaderScreen struct {
	controller *services.Controller
	player     *narration.Player // nil when no audio device
	story      *data.Story
	pageIndex  int
	width      int
	height     int
	err        error
}

func NewReaderScreen(controller *services.Controller, story *data.Story, player *narration.Player) *ReaderScreen {
	return &ReaderScreen{
		controller: controller,
		player:     player,
		story:      story,
	}
}

func (s *ReaderScreen) Init() tea.Cmd {
	return nil
}

func (s *ReaderScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l", "n":
			s.turnPage(1)
		case "left", "h", "p":
			s.turnPage(-1)
		case " ":
			s.toggleNarration()
		case "f":
			return s, s.toggleFavorite()
		case "esc", "backspace":
			s.stopNarration()
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "library"}
			}
		}

	case favoriteToggledMsg:
		if msg.err != nil {
			s.err = msg.err
		} else {
			s.story.IsFavorite = !s.story.IsFavorite
		}
	}

	return s, nil
}

func (s *ReaderScreen) View() string {
	if s.story == nil || len(s.story.Pages) == 0 {
		return styles.MutedStyle.Render("This story has no pages.")
	}

	page := s.story.Pages[s.pageIndex]

	var b strings.Builder
	title := s.story.Title
	if s.story.IsFavorite {
		title = styles.FavoriteStyle.Render("★ ") + title
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Page %d of %d", s.pageIndex+1, len(s.story.Pages))))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("🖼  %s", page.ImagePrompt)))
	b.WriteString("\n\n")

	width := s.width - 8
	if width < 20 {
		width = 60
	}
	b.WriteString(styles.PageTextStyle.Width(width).Render(page.Text))
	b.WriteString("\n\n")

	b.WriteString(s.narrationStatus(page))
	b.WriteString("\n")

	if s.err != nil {
		b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)))
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("←/→: turn page • space: narration • f: favorite • esc: back"))
	return b.String()
}

func (s *ReaderScreen) narrationStatus(page data.Page) string {
	switch {
	case s.player == nil:
		return styles.MutedStyle.Render("🔇 audio device unavailable")
	case !page.HasAudio():
		return styles.MutedStyle.Render("🔇 no narration for this page")
	case s.player.State() == narration.Playing:
		return styles.StatusGenerating.Render("🔊 narrating...")
	default:
		return styles.MutedStyle.Render("🔈 press space to hear this page")
	}
}

// turnPage moves the view and stops any narration so audio never plays
// against a page the user is no longer seeing.
func (s *ReaderScreen) turnPage(delta int) {
	next := s.pageIndex + delta
	if next < 0 || next >= len(s.story.Pages) {
		return
	}
	s.stopNarration()
	s.pageIndex = next
}

func (s *ReaderScreen) toggleNarration() {
	if s.player == nil {
		return
	}
	if s.player.State() == narration.Playing {
		s.player.Stop()
		return
	}

	page := s.story.Pages[s.pageIndex]
	if !page.HasAudio() {
		return
	}

	clip, err := narration.DecodePCM(page.AudioData)
	if err != nil {
		s.err = err
		return
	}
	if err := s.player.Play(clip); err != nil {
		s.err = err
	}
}

func (s *ReaderScreen) stopNarration() {
	if s.player != nil {
		s.player.Stop()
	}
}

func (s *ReaderScreen) toggleFavorite() tea.Cmd {
	return func() tea.Msg {
		return favoriteToggledMsg{err: s.controller.Repo.SetFavorite(s.story.ID, !s.story.IsFavorite)}
	}
}
