package main

import "github.com/andrevm/gemchat/internal/commands"

func main() {
	commands.Execute()
}
