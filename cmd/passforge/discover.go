package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/user"

	"github.com/passforge/passforge/core/discovery"
	"github.com/passforge/passforge/core/script"
	"github.com/passforge/passforge/hostcli"
)

// runDiscover implements "passforge discover <title>": match the given
// window title against every loaded account's discovery field, let the
// user disambiguate if more than one candidate matches, and run the
// winning script against the live environment.
func runDiscover(configDir string, args []string) int {
	fs := flag.NewFlagSet("discover", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "print the script to stdout instead of driving the host")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: passforge discover <window-title>")
		return 2
	}
	title := fs.Arg(0)

	gen, err := openGenerator(configDir)
	if err != nil {
		printError(err)
		return 2
	}

	snapshot := discovery.Snapshot{Title: title, URL: discovery.ParseTitleURL(title)}
	if wd, err := os.Getwd(); err == nil {
		snapshot.CWD = wd
	}
	if u, err := user.Current(); err == nil {
		snapshot.User = u.Username
	}
	if host, err := os.Hostname(); err == nil {
		snapshot.Host = host
	}

	candidates, err := gen.Discover(snapshot)
	if err != nil {
		printError(err)
		return 2
	}
	if len(candidates) == 0 {
		fmt.Fprintln(os.Stderr, "no account recognized this environment")
		return 1
	}

	chosen, ok, err := hostcli.Select(candidates)
	if err != nil {
		printError(err)
		return 2
	}
	if !ok {
		return 1
	}

	var sink script.Sink
	if *dryRun {
		sink = hostcli.NewStdoutSink()
	} else {
		sink = hostcli.NewXdotoolSink(gen.Settings.XdotoolExecutable, gen.Settings.XselExecutable)
	}

	if err := gen.RunScript(context.Background(), chosen, sink); err != nil {
		printError(err)
		return 2
	}
	return 0
}
