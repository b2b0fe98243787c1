package main

import "github.com/KaramelBytes/staylens-cli/cmd"

func main() {
	cmd.Execute()
}
