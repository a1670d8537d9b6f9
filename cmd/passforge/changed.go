package main

import (
	"flag"
	"fmt"
	"sort"
)

// runChanged implements "passforge changed": diff the currently loaded
// accounts against the last sealed archive, printing additions,
// removals, and field-level changes.
func runChanged(configDir string, args []string) int {
	fs := flag.NewFlagSet("changed", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	gen, err := openGenerator(configDir)
	if err != nil {
		printError(err)
		return 2
	}

	changes, err := gen.Changed(configDir)
	if err != nil {
		printError(err)
		return 2
	}
	if changes.IsEmpty() {
		fmt.Println("no changes")
		return 0
	}

	for _, name := range changes.AddedAccounts {
		fmt.Printf("+ %s\n", name)
	}
	for _, name := range changes.RemovedAccounts {
		fmt.Printf("- %s\n", name)
	}
	for _, name := range sortedKeys(changes.ChangedFields) {
		for _, fc := range changes.ChangedFields[name] {
			fmt.Printf("~ %s.%s: %v -> %v\n", name, fc.Field, fc.Old, fc.New)
		}
	}
	return 1
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
