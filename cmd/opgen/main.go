package main

import "github.com/tamasfe/opgen/cmd/opgen/commands"

func main() {
	commands.Execute()
}
