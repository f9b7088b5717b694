package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read [story-id or title]",
	Short: "Print a story to the terminal",
	Long:  "Print a story's pages in reading order. Use the TUI (plain 'storyforge') for narration playback.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		story, err := findStory(ctrl, args[0])
		cobra.CheckErr(err)

		fmt.Printf("\n%s\n", story.Title)
		fmt.Println(strings.Repeat("═", len(story.Title)+2))
		if len(story.Cast) > 0 {
			fmt.Print("Cast: ")
			names := make([]string, len(story.Cast))
			for i, member := range story.Cast {
				names[i] = fmt.Sprintf("%s (%s)", member.Name, member.Role)
			}
			fmt.Println(strings.Join(names, ", "))
		}

		for i, page := range story.Pages {
			fmt.Printf("\n— Page %d —\n\n", i+1)
			fmt.Println(page.Text)
			fmt.Printf("\n  🖼  %s\n", page.ImageURL)
			if page.HasAudio() {
				fmt.Println("  🔊 narration available in the TUI")
			}
		}
	},
}
