package main

import (
	"os"

	"github.com/sahana/lingo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
