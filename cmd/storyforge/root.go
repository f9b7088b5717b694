package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"storyforge/pkg/app"
	"storyforge/pkg/config"
	"storyforge/pkg/services"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "storyforge",
	Short: "Manifest illustrated, narrated stories",
	Long:  "Configure a genre, mood, art style, and cast; storyforge generates the pages, illustrations, and narration, and keeps the result on your shelf.",
	Run: func(cmd *cobra.Command, args []string) {
		// Launch TUI by default
		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		a := app.NewApp(ctrl)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "path to config file")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(configCmd)
}

func newController() (*services.Controller, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return services.NewController(cfg)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
