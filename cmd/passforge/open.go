package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/passforge/passforge/core"
	"github.com/passforge/passforge/core/envelope"
	"github.com/passforge/passforge/hostcli"
)

// openGenerator loads settings and the account index from configDir,
// wiring hostcli.Prompt as the interactive collaborator, the way
// cli/main.go's subcommands each load .nox.yaml before doing their work.
func openGenerator(configDir string) (*core.Generator, error) {
	settings, err := core.LoadSettings(filepath.Join(configDir, "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	kr, err := envelope.LoadKeyring(filepath.Join(configDir, "keyring.json"))
	if err != nil {
		return nil, fmt.Errorf("loading keyring: %w", err)
	}

	indexPath := core.ResolvePath(configDir, "accounts")
	gen, err := core.Open(indexPath, configDir, *settings, kr, hostcli.Prompt)
	if err != nil {
		return nil, fmt.Errorf("opening account index: %w", err)
	}
	for _, w := range gen.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}
	return gen, nil
}
