package main

import (
	"os"

	"github.com/pesafile-dev/pesafile/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
