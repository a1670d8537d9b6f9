package generator

import (
	"fmt"
	"os"

	"github.com/passforge/passforge/core/apperr"
)

// WriteFile writes Content to Path with the given Mode and returns a short
// acknowledgement string rather than the content itself. Content is expected
// to already be the fully materialized value of whatever field variant the
// account declared (core/account resolves that nesting before constructing
// this generator, to avoid a dependency cycle between core/generator and
// core/account). Per spec's Design Notes, this is the one generator whose
// Materialize call has a side effect distinct from producing its return
// value, so it is routed through env.WriteFile rather than calling
// os.WriteFile directly, letting tests intercept the write.
type WriteFile struct {
	Path    string
	Content string
	Mode    os.FileMode
}

func (w WriteFile) Kind() Kind { return KindWriteFile }

// fileModeOf converts a loader-facing numeric mode to os.FileMode,
// defaulting to 0600 when unset.
func fileModeOf(mode uint32) os.FileMode {
	if mode == 0 {
		return 0o600
	}
	return os.FileMode(mode)
}

func (w WriteFile) Materialize(env *Env) (string, error) {
	if w.Path == "" {
		return "", apperr.New(apperr.BadPath, "", "write_file: empty path")
	}
	mode := w.Mode
	if mode == 0 {
		mode = 0o600
	}
	sink := env.WriteFile
	if sink == nil {
		sink = func(path string, content []byte, mode os.FileMode) error {
			return os.WriteFile(path, content, mode)
		}
	}
	if err := sink(w.Path, []byte(w.Content), mode); err != nil {
		return "", apperr.Wrap(apperr.IOFailure, w.Path, err, "write_file: writing %s", w.Path)
	}
	return fmt.Sprintf("wrote %d bytes to %s", len(w.Content), w.Path), nil
}
