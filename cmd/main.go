package main

import cmd "storyforge/cmd/storyforge"

func main() {
	cmd.Execute()
}
