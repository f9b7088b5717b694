package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"storyforge/pkg/data"
	"storyforge/pkg/services"
)

var exportCmd = &cobra.Command{
	Use:   "export [story-id or title]",
	Short: "Export a story as a PDF or EPUB",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		outputDir, _ := cmd.Flags().GetString("out")

		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		story, err := findStory(ctrl, args[0])
		cobra.CheckErr(err)

		if outputDir == "" {
			outputDir = ctrl.Config.Paths.ExportDir
		}

		var path string
		switch format {
		case "pdf":
			path, err = ctrl.PDF.Export(story, outputDir)
		case "epub":
			path, err = ctrl.EPUB.Export(story, outputDir)
		default:
			cobra.CheckErr(fmt.Errorf("unknown format %q (use pdf or epub)", format))
		}
		cobra.CheckErr(err)

		fmt.Printf("📄 Exported: %s\n", path)
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "pdf", "Output format: pdf or epub")
	exportCmd.Flags().StringP("out", "o", "", "Output directory (defaults to configured export dir)")
}

// findStory resolves an argument as a story ID first, then as a
// case-insensitive title match.
func findStory(ctrl *services.Controller, identifier string) (*data.Story, error) {
	story, err := ctrl.Repo.GetStory(identifier)
	if err != nil {
		return nil, err
	}
	if story != nil {
		return story, nil
	}

	stories, err := ctrl.Repo.ListStories()
	if err != nil {
		return nil, err
	}
	for _, candidate := range stories {
		if strings.EqualFold(candidate.Title, identifier) {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("no story found matching %q", identifier)
}
