package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storyforge/pkg/app/components"
	"storyforge/pkg/app/styles"
	"storyforge/pkg/assembler"
	"storyforge/pkg/data"
	"storyforge/pkg/generation"
	"storyforge/pkg/services"
)

const defaultPageCount = 5

var createFields = []struct {
	label       string
	placeholder string
}{
	{"Genre", "fantasy, sci-fi, mystery..."},
	{"Mood", "whimsical, spooky, calm..."},
	{"Art style", "watercolor, pixel art, ink sketch..."},
	{"Pages", "5"},
	{"Cast", "Pip: dragon, Greta: potter"},
	{"Plot hook", "optional: what sets the story in motion"},
}

type CreateScreen struct {
	controller *services.Controller
	inputs     []textinput.Model
	focused    int
	generating bool
	// done is closed when the current generation finishes, releasing any
	// command still waiting on the progress channel.
	done     chan struct{}
	progress *components.GenerationProgress
	width    int
	height   int
	err      error
}

func NewCreateScreen(controller *services.Controller) *CreateScreen {
	inputs := make([]textinput.Model, len(createFields))
	for i, field := range createFields {
		input := textinput.New()
		input.Placeholder = field.placeholder
		input.CharLimit = 200
		input.Width = 50
		inputs[i] = input
	}
	inputs[0].Focus()

	return &CreateScreen{
		controller: controller,
		inputs:     inputs,
		progress:   components.NewGenerationProgress(50),
	}
}

func (s *CreateScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *CreateScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if s.generating {
			// No interaction while the pipeline runs; it always runs to
			// completion.
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "library"}
			}
		case "tab", "down":
			s.focusField(s.focused + 1)
			return s, nil
		case "shift+tab", "up":
			s.focusField(s.focused - 1)
			return s, nil
		case "enter":
			if s.focused == len(s.inputs)-1 {
				return s, s.startGeneration()
			}
			s.focusField(s.focused + 1)
			return s, nil
		}

	case progressMsg:
		s.progress.Update(assembler.Progress(msg))
		return s, s.waitForProgress()

	case storyCreatedMsg:
		s.generating = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		return s, func() tea.Msg {
			return SwitchScreenMsg{Screen: "reader", Data: msg.story}
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return s, cmd
}

func (s *CreateScreen) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("✨ Manifest a Story"))
	b.WriteString("\n\n")

	for i, field := range createFields {
		inputStyle := styles.InputStyle
		if i == s.focused {
			inputStyle = styles.FocusedInputStyle
		}
		b.WriteString(styles.SubtitleStyle.Render(field.label))
		b.WriteString("\n")
		b.WriteString(inputStyle.Render(s.inputs[i].View()))
		b.WriteString("\n")
	}

	if s.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)))
		b.WriteString("\n")
	}

	if s.generating {
		b.WriteString("\n")
		if view := s.progress.View(); view != "" {
			b.WriteString(view)
		} else {
			b.WriteString(styles.StatusGenerating.Render("Writing the story..."))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("tab/enter: next field • enter on last field: generate • esc: back"))
	return b.String()
}

func (s *CreateScreen) focusField(index int) {
	if index < 0 {
		index = len(s.inputs) - 1
	}
	if index >= len(s.inputs) {
		index = 0
	}
	s.inputs[s.focused].Blur()
	s.focused = index
	s.inputs[s.focused].Focus()
}

// Messages
type storyCreatedMsg struct {
	story *data.Story
	err   error
}

type progressMsg assembler.Progress

// Commands
func (s *CreateScreen) startGeneration() tea.Cmd {
	req := s.buildRequest()
	s.generating = true
	s.err = nil
	s.progress.Reset()

	done := make(chan struct{})
	s.done = done

	return tea.Batch(
		func() tea.Msg {
			story, err := s.controller.Stories.CreateStory(context.Background(), req)
			close(done)
			return storyCreatedMsg{story: story, err: err}
		},
		s.waitForProgress(),
	)
}

func (s *CreateScreen) waitForProgress() tea.Cmd {
	done := s.done
	return func() tea.Msg {
		select {
		case p, ok := <-s.controller.Stories.Progress():
			if !ok {
				return nil
			}
			return progressMsg(p)
		case <-done:
			return nil
		}
	}
}

func (s *CreateScreen) buildRequest() generation.StoryRequest {
	pageCount, err := strconv.Atoi(strings.TrimSpace(s.inputs[3].Value()))
	if err != nil || pageCount < 1 {
		pageCount = defaultPageCount
	}

	return generation.StoryRequest{
		Genre:     strings.TrimSpace(s.inputs[0].Value()),
		Mood:      strings.TrimSpace(s.inputs[1].Value()),
		Style:     strings.TrimSpace(s.inputs[2].Value()),
		PageCount: pageCount,
		Cast:      parseCast(s.inputs[4].Value()),
		PlotHook:  strings.TrimSpace(s.inputs[5].Value()),
	}
}

// parseCast reads "Name: role, Name: role" into cast members.
func parseCast(raw string) []data.CastMember {
	var cast []data.CastMember
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, role := entry, ""
		if idx := strings.Index(entry, ":"); idx >= 0 {
			name = strings.TrimSpace(entry[:idx])
			role = strings.TrimSpace(entry[idx+1:])
		}
		if name == "" {
			continue
		}
		cast = append(cast, data.CastMember{Name: name, Role: role})
	}
	return cast
}
