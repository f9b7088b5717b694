package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"storyforge/pkg/app/styles"
	"storyforge/pkg/data"
)

type StoryList struct {
	Items         []*data.Story
	SelectedIndex int
	Width         int
	Height        int
}

func NewStoryList() *StoryList {
	return &StoryList{
		Items:  []*data.Story{},
		Width:  80,
		Height: 20,
	}
}

func (l *StoryList) SetItems(items []*data.Story) {
	l.Items = items
	if l.SelectedIndex >= len(items) && len(items) > 0 {
		l.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		l.SelectedIndex = 0
	}
}

func (l *StoryList) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex++
	if l.SelectedIndex >= len(l.Items) {
		l.SelectedIndex = 0
	}
}

func (l *StoryList) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.Items) - 1
	}
}

func (l *StoryList) Selected() *data.Story {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return l.Items[l.SelectedIndex]
}

func (l *StoryList) View() string {
	if len(l.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No stories yet. Press 'n' to create one.")
		return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	for i, story := range l.Items {
		cardStyle := styles.CardStyle
		if i == l.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := story.Title
		if story.IsFavorite {
			title = styles.FavoriteStyle.Render("★ ") + title
		}

		narrated := 0
		for _, page := range story.Pages {
			if page.HasAudio() {
				narrated++
			}
		}

		card := fmt.Sprintf("%s\n%s\n%s",
			styles.TitleStyle.Render(title),
			styles.SubtitleStyle.Render(fmt.Sprintf("%s · %s · %s", story.Genre, story.Mood, story.Style)),
			styles.MutedStyle.Render(fmt.Sprintf("%d pages, %d narrated · %s",
				len(story.Pages), narrated, story.CreatedAt.Format("Jan 2, 2006"))),
		)

		b.WriteString(cardStyle.Width(l.Width - 4).Render(card))
		b.WriteString("\n")
	}
	return b.String()
}
