package main

import "github.com/KaramelBytes/vizprofile-cli/cmd"

func main() {
	cmd.Execute()
}
