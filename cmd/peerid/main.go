package main

import (
	"os"

	"peerid/cmd/peerid/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
