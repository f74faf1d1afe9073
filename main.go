package main

import (
	"os"

	"github.com/thapanathk/speech2text-meeting/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
