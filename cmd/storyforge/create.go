package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"storyforge/pkg/data"
	"storyforge/pkg/generation"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a new story",
	Long:  "Generate a story from the given configuration and save it to the library",
	Run: func(cmd *cobra.Command, args []string) {
		genre, _ := cmd.Flags().GetString("genre")
		mood, _ := cmd.Flags().GetString("mood")
		style, _ := cmd.Flags().GetString("style")
		plot, _ := cmd.Flags().GetString("plot")
		pages, _ := cmd.Flags().GetInt("pages")
		castFlag, _ := cmd.Flags().GetStringSlice("cast")

		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		var cast []data.CastMember
		for _, entry := range castFlag {
			name, role := entry, ""
			if idx := strings.Index(entry, ":"); idx >= 0 {
				name = strings.TrimSpace(entry[:idx])
				role = strings.TrimSpace(entry[idx+1:])
			}
			if name != "" {
				cast = append(cast, data.CastMember{Name: name, Role: role})
			}
		}

		fmt.Printf("✨ Writing a %s %s story (%d pages)...\n", mood, genre, pages)

		// Listen for assembly progress
		go func() {
			for progress := range ctrl.Stories.Progress() {
				fmt.Printf("  🎨 page %d/%d assembled\n", progress.Completed, progress.Total)
			}
		}()

		story, err := ctrl.Stories.CreateStory(context.Background(), generation.StoryRequest{
			Genre:     genre,
			Mood:      mood,
			Style:     style,
			PlotHook:  plot,
			PageCount: pages,
			Cast:      cast,
		})
		cobra.CheckErr(err)

		fmt.Printf("\n📖 %q saved (%s)\n", story.Title, story.ID)
		withAudio := 0
		for _, page := range story.Pages {
			if page.HasAudio() {
				withAudio++
			}
		}
		fmt.Printf("   %d pages, %d narrated\n", len(story.Pages), withAudio)
	},
}

func init() {
	createCmd.Flags().StringP("genre", "g", "fantasy", "Story genre")
	createCmd.Flags().StringP("mood", "m", "whimsical", "Story mood")
	createCmd.Flags().StringP("style", "s", "watercolor", "Illustration style")
	createCmd.Flags().StringP("plot", "p", "", "Optional plot hook")
	createCmd.Flags().IntP("pages", "n", 5, "Number of pages")
	createCmd.Flags().StringSlice("cast", nil, "Cast members as 'Name: role'")
}
