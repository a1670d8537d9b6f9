// Package hostcli provides sample host-collaborator implementations the
// CLI wires into core.Generator: an interactive passphrase/seed prompt,
// a stdout-backed script.Sink, and an OS-specific clipboard/notification
// driver invoked through external executables. These are reference
// drivers, not the only way to satisfy the collaborator interfaces — a
// GUI host or a browser extension would implement the same contracts
// differently.
package hostcli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompt reads a line of hidden input from the controlling terminal,
// labelled with label, for use as core.Generator's Prompt collaborator
// (passphrases and stealth-account seeds never touch Settings or argv).
// When stdin isn't a terminal it falls back to a plain (echoed) read, so
// prompts still work when piped in tests or scripts.
func Prompt(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	bytes, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", label, err)
	}
	return string(bytes), nil
}
