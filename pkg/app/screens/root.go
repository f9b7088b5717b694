package screens

import (
	tea "github.com/charmbracelet/bubbletea"

	"storyforge/pkg/data"
	"storyforge/pkg/narration"
	"storyforge/pkg/services"
)

type screenType int

const (
	libraryView screenType = iota
	createView
	readerView
)

// SwitchScreenMsg is emitted by sub-screens to change the active view.
type SwitchScreenMsg struct {
	Screen string
	Data   any
}

type RootScreen struct {
	controller *services.Controller

	// player is created on first reader entry; nil when no audio device
	// is available.
	player      *narration.Player
	triedPlayer bool

	currentView screenType
	library     *LibraryScreen
	create      *CreateScreen
	reader      *ReaderScreen

	width  int
	height int
}

func NewRootScreen(controller *services.Controller) *RootScreen {
	return &RootScreen{
		controller:  controller,
		currentView: libraryView,
		library:     NewLibraryScreen(controller),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.library.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			r.stopNarration()
			return r, tea.Quit
		}
		if msg.String() == "q" && r.currentView == libraryView {
			return r, tea.Quit
		}

	case SwitchScreenMsg:
		// Navigating away from any view stops active narration.
		r.stopNarration()

		switch msg.Screen {
		case "library":
			r.currentView = libraryView
			return r, r.library.Init()
		case "create":
			r.create = NewCreateScreen(r.controller)
			r.currentView = createView
			return r, r.create.Init()
		case "reader":
			story, ok := msg.Data.(*data.Story)
			if !ok || story == nil {
				r.currentView = libraryView
				return r, r.library.Init()
			}
			r.reader = NewReaderScreen(r.controller, story, r.narrationPlayer())
			r.currentView = readerView
			return r, r.reader.Init()
		}
		return r, nil
	}

	var cmd tea.Cmd
	switch r.currentView {
	case libraryView:
		_, cmd = r.library.Update(msg)
	case createView:
		_, cmd = r.create.Update(msg)
	case readerView:
		_, cmd = r.reader.Update(msg)
	}
	return r, cmd
}

func (r *RootScreen) View() string {
	switch r.currentView {
	case createView:
		return r.create.View()
	case readerView:
		return r.reader.View()
	default:
		return r.library.View()
	}
}

// narrationPlayer opens the audio device on first use. Failure leaves the
// player nil: reading works, narration is simply unavailable.
func (r *RootScreen) narrationPlayer() *narration.Player {
	if !r.triedPlayer {
		r.triedPlayer = true
		if speaker, err := narration.NewSpeaker(); err == nil {
			r.player = narration.NewPlayer(speaker)
		} else {
			r.controller.Log.WithError(err).Warn("audio device unavailable, narration disabled")
		}
	}
	return r.player
}

func (r *RootScreen) stopNarration() {
	if r.player != nil {
		r.player.Stop()
	}
}
