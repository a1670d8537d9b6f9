package loader

import (
	"bufio"
	"os"
	"strings"

	"github.com/passforge/passforge/core/apperr"
)

// readIndex reads the plain index file of account file paths, one per
// line. Blank lines and lines starting with '#' are ignored, the same
// tolerant-comment convention core/rules.LoadRulesFromDir's directory walk
// affords for file discovery, applied here to a flat list instead.
func readIndex(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.IOFailure, path, err, "reading account index %s", path)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.Wrap(apperr.IOFailure, path, err, "scanning account index %s", path)
	}
	return paths, nil
}
