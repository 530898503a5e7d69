package main

import "github.com/zjrosen/soundpairs/cmd"

func main() {
	cmd.Execute()
}
