package main

import (
	"os"

	"github.com/weberbot/weber/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
