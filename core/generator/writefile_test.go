package generator

import (
	"os"
	"testing"

	"github.com/passforge/passforge/core/apperr"
)

func TestWriteFileInvokesSink(t *testing.T) {
	var gotPath, gotContent string
	var gotMode os.FileMode
	env := &Env{WriteFile: func(path string, content []byte, mode os.FileMode) error {
		gotPath, gotContent, gotMode = path, string(content), mode
		return nil
	}}
	w := WriteFile{Path: "/tmp/example.key", Content: "sekrit", Mode: 0o600}
	ack, err := w.Materialize(env)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if gotPath != "/tmp/example.key" || gotContent != "sekrit" || gotMode != 0o600 {
		t.Fatalf("sink got (%q, %q, %v)", gotPath, gotContent, gotMode)
	}
	if ack != "wrote 6 bytes to /tmp/example.key" {
		t.Fatalf("ack = %q", ack)
	}
}

func TestWriteFileRejectsEmptyPath(t *testing.T) {
	env := &Env{WriteFile: func(string, []byte, os.FileMode) error { return nil }}
	_, err := WriteFile{Content: "x"}.Materialize(env)
	if !apperr.Is(err, apperr.BadPath) {
		t.Fatalf("got %v, want bad_path", err)
	}
}

func TestWriteFileWrapsSinkError(t *testing.T) {
	env := &Env{WriteFile: func(string, []byte, os.FileMode) error {
		return os.ErrPermission
	}}
	_, err := WriteFile{Path: "/root/nope"}.Materialize(env)
	if !apperr.Is(err, apperr.IOFailure) {
		t.Fatalf("got %v, want io_failure", err)
	}
}
