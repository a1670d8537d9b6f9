package main

import (
	"flag"
	"fmt"
	"strings"
)

// runList implements "passforge list", printing every non-stealth
// account's canonical name and aliases, one per line.
func runList(configDir string, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	gen, err := openGenerator(configDir)
	if err != nil {
		printError(err)
		return 2
	}

	for _, acc := range gen.AllAccounts() {
		line := acc.CanonicalName
		if len(acc.Aliases) > 0 {
			line += " (" + strings.Join(acc.Aliases, ", ") + ")"
		}
		fmt.Println(line)
	}
	return 0
}
