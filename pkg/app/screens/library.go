package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"storyforge/pkg/app/components"
	"storyforge/pkg/app/styles"
	"storyforge/pkg/data"
	"storyforge/pkg/services"
)

type LibraryScreen struct {
	controller *services.Controller
	storyList  *components.StoryList
	status     string
	width      int
	height     int
	err        error
}

func NewLibraryScreen(controller *services.Controller) *LibraryScreen {
	return &LibraryScreen{
		controller: controller,
		storyList:  components.NewStoryList(),
	}
}

func (s *LibraryScreen) Init() tea.Cmd {
	return s.loadLibrary
}

func (s *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.storyList.Width = msg.Width - 4
		s.storyList.Height = msg.Height - 10

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.storyList.Prev()
		case "down", "j":
			s.storyList.Next()
		case "r":
			return s, s.loadLibrary
		case "n":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "create"}
			}
		case "d":
			if selected := s.storyList.Selected(); selected != nil {
				return s, s.deleteStory(selected.ID)
			}
		case "e":
			if selected := s.storyList.Selected(); selected != nil {
				return s, s.exportStory(selected, "pdf")
			}
		case "E":
			if selected := s.storyList.Selected(); selected != nil {
				return s, s.exportStory(selected, "epub")
			}
		case "f":
			if selected := s.storyList.Selected(); selected != nil {
				return s, s.toggleFavorite(selected)
			}
		case "enter":
			if selected := s.storyList.Selected(); selected != nil {
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "reader", Data: selected}
				}
			}
		}

	case libraryLoadedMsg:
		s.storyList.SetItems(msg.stories)
		s.err = msg.err

	case storyDeletedMsg:
		s.err = msg.err
		return s, s.loadLibrary

	case storyExportedMsg:
		s.err = msg.err
		if msg.err == nil {
			s.status = fmt.Sprintf("Exported to %s", msg.path)
		}

	case favoriteToggledMsg:
		s.err = msg.err
		return s, s.loadLibrary
	}

	return s, nil
}

func (s *LibraryScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("📖 Story Library")

	var notice string
	if s.err != nil {
		notice = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	} else if s.status != "" {
		notice = styles.StatusComplete.Render(s.status) + "\n\n"
	}

	help := styles.HelpStyle.Render(
		"↑/k: up • ↓/j: down • enter: read • n: new story • f: favorite • e: export PDF • E: export EPUB • d: delete • r: refresh • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, notice, s.storyList.View(), help)
}

// Messages
type libraryLoadedMsg struct {
	stories []*data.Story
	err     error
}

type storyDeletedMsg struct {
	err error
}

type storyExportedMsg struct {
	path string
	err  error
}

type favoriteToggledMsg struct {
	err error
}

// Commands
func (s *LibraryScreen) loadLibrary() tea.Msg {
	stories, err := s.controller.Repo.ListStories()
	return libraryLoadedMsg{stories: stories, err: err}
}

func (s *LibraryScreen) deleteStory(id string) tea.Cmd {
	return func() tea.Msg {
		return storyDeletedMsg{err: s.controller.Repo.DeleteStory(id)}
	}
}

func (s *LibraryScreen) exportStory(story *data.Story, format string) tea.Cmd {
	return func() tea.Msg {
		var path string
		var err error
		switch format {
		case "epub":
			path, err = s.controller.EPUB.Export(story, s.controller.Config.Paths.ExportDir)
		default:
			path, err = s.controller.PDF.Export(story, s.controller.Config.Paths.ExportDir)
		}
		return storyExportedMsg{path: path, err: err}
	}
}

func (s *LibraryScreen) toggleFavorite(story *data.Story) tea.Cmd {
	return func() tea.Msg {
		return favoriteToggledMsg{err: s.controller.Repo.SetFavorite(story.ID, !story.IsFavorite)}
	}
}
