package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stories in your library",
	Long:  "Display all saved stories in a formatted table",
	Run: func(cmd *cobra.Command, args []string) {
		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		stories, err := ctrl.Repo.ListStories()
		cobra.CheckErr(err)

		if len(stories) == 0 {
			fmt.Println("📖 No stories yet. Use 'storyforge create' to make one.")
			return
		}

		columns := []table.Column{
			{Title: "Title", Width: 36},
			{Title: "Genre", Width: 12},
			{Title: "Mood", Width: 12},
			{Title: "Pages", Width: 6},
			{Title: "Narrated", Width: 9},
			{Title: "Created", Width: 12},
			{Title: "★", Width: 2},
		}

		rows := []table.Row{}
		for _, story := range stories {
			narrated := 0
			for _, page := range story.Pages {
				if page.HasAudio() {
					narrated++
				}
			}
			favorite := ""
			if story.IsFavorite {
				favorite = "★"
			}
			rows = append(rows, table.Row{
				truncateString(story.Title, 34),
				story.Genre,
				story.Mood,
				fmt.Sprintf("%d", len(story.Pages)),
				fmt.Sprintf("%d", narrated),
				story.CreatedAt.Format("2006-01-02"),
				favorite,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n📖 Library (%d stories)\n\n", len(stories))
		fmt.Println(t.View())
	},
}

// truncateString shortens a title to maxLen runes, never splitting a
// multi-byte character.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
