package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storyforge/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage storyforge configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file",
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(config.WriteSample(cfgPath))
		fmt.Printf("📝 Wrote %s\n", cfgPath)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(cfgPath)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
