package main

import "github.com/penwyp/cloudwatcher/commands"

func main() {
	commands.Execute()
}
