package main

import (
	"flag"
	"fmt"
	"os"
)

// runGet implements "passforge get <account> [field]", the field argument
// being optional per spec §4.4's default-field resolution.
func runGet(configDir string, args []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 && fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: passforge get <account> [field]")
		return 2
	}
	account := fs.Arg(0)

	gen, err := openGenerator(configDir)
	if err != nil {
		printError(err)
		return 2
	}

	field := ""
	if fs.NArg() == 2 {
		field = fs.Arg(1)
	} else {
		field, err = gen.DefaultFieldName(account)
		if err != nil {
			printError(err)
			return 1
		}
	}

	val, err := gen.GetComposite(account, field)
	if err != nil {
		printError(err)
		return 1
	}
	fmt.Println(val.Value)
	return 0
}
