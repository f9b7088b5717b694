package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [story-id or title]",
	Short: "Delete a story from the library",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		story, err := findStory(ctrl, args[0])
		cobra.CheckErr(err)

		cobra.CheckErr(ctrl.Repo.DeleteStory(story.ID))
		fmt.Printf("🗑  Deleted %q\n", story.Title)
	},
}
