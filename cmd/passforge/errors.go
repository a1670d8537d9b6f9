package main

import (
	"fmt"
	"os"

	"github.com/passforge/passforge/core/apperr"
)

var sanitizer = apperr.NewSanitizer()

// printError renders err to stderr after scrubbing anything that looks
// like a generated secret or seed, the boundary spec §7 describes: errors
// may name what went wrong, never the secret material involved.
func printError(err error) {
	clean, _ := sanitizer.Sanitize(err.Error())
	fmt.Fprintf(os.Stderr, "error: %s\n", clean)
}
