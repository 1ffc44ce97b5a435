package main

import (
	"fmt"
	"os"

	"github.com/anshita195/share-reading-watch-lists/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "readwatch: %v\n", err)
		os.Exit(1)
	}
}
