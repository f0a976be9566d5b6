package main

import (
	"os"

	"github.com/linkedscout/linkedscout/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
