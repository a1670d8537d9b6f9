package main

import (
	"flag"
	"fmt"
)

// runArchive implements "passforge archive": seal a snapshot of every
// loaded account to Settings.ArchiveFile.
func runArchive(configDir string, args []string) int {
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	gen, err := openGenerator(configDir)
	if err != nil {
		printError(err)
		return 2
	}

	if err := gen.Archive(configDir); err != nil {
		printError(err)
		return 2
	}
	fmt.Println("archive written")
	return 0
}
