package main

import (
	"os"

	"github.com/bravedhq/beelearn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
