// Command passforge is the reference CLI for the passforge account
// generator: a thin wrapper over core.Generator that wires settings, the
// account index, and a host-collaborator set into the handful of
// subcommands spec §6 describes. It is explicitly not the only possible
// dispatcher — a GUI, browser extension, or hotkey daemon could drive
// core.Generator the same way.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the exit code.
// 0 = success, 1 = not found / stale / changed, 2 = usage or internal error.
func run(args []string) int {
	fs := flag.NewFlagSet("passforge", flag.ContinueOnError)

	var configDir string
	home, _ := os.UserHomeDir()
	fs.StringVar(&configDir, "config-dir", filepath.Join(home, ".passforge"), "directory holding config.yaml, the account index, and the archive")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: passforge [--config-dir DIR] <command> [args]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  get <account> [field]   Resolve one field and print it\n")
		fmt.Fprintf(os.Stderr, "  list                    List every loaded account\n")
		fmt.Fprintf(os.Stderr, "  discover <title>        Find accounts matching a window title\n")
		fmt.Fprintf(os.Stderr, "  archive                 Seal a snapshot of every account to disk\n")
		fmt.Fprintf(os.Stderr, "  changed                 Diff loaded accounts against the last archive\n")
		fmt.Fprintf(os.Stderr, "  version                 Print version and exit\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	// Flags must be parsed before the subcommand name, but --config-dir
	// may legitimately appear after it too; extract it either way.
	args = extractConfigDirFlag(args, &configDir)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		fs.Usage()
		return 2
	}

	command := remaining[0]
	rest := remaining[1:]
	switch command {
	case "get":
		return runGet(configDir, rest)
	case "list":
		return runList(configDir, rest)
	case "discover":
		return runDiscover(configDir, rest)
	case "archive":
		return runArchive(configDir, rest)
	case "changed":
		return runChanged(configDir, rest)
	case "version":
		fmt.Printf("passforge %s (commit: %s)\n", version, commit)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		fs.Usage()
		return 2
	}
}

// extractConfigDirFlag pulls "--config-dir"/"--config-dir=X" out of args
// wherever it appears and returns the rest, so it can precede or follow
// the subcommand name.
func extractConfigDirFlag(args []string, configDir *string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--config-dir" && i+1 < len(args):
			*configDir = args[i+1]
			i++
		case len(arg) > len("--config-dir=") && arg[:len("--config-dir=")] == "--config-dir=":
			*configDir = arg[len("--config-dir="):]
		default:
			out = append(out, arg)
		}
	}
	return out
}
