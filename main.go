package main

import "github.com/agentic-research/ketl/cmd"

func main() {
	cmd.Execute()
}
