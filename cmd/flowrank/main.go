package main

import (
	"os"

	"github.com/wonny/flowrank/cmd/flowrank/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
