package integrity

import (
	"testing"

	"github.com/passforge/passforge/core/apperr"
)

func TestCheckPassesOnMatchingDigest(t *testing.T) {
	content := []byte("hello world")
	m := Manifest{"wordlist": ComputeDigest(content).String()}
	warnings := Check(m, map[string][]byte{"wordlist": content})
	if len(warnings) != 0 {
		t.Fatalf("got warnings %v, want none", warnings)
	}
}

func TestCheckReportsMismatchAsWarning(t *testing.T) {
	m := Manifest{"wordlist": ComputeDigest([]byte("original")).String()}
	warnings := Check(m, map[string][]byte{"wordlist": []byte("tampered")})
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if !apperr.Is(warnings[0], apperr.HashMismatch) {
		t.Fatalf("got %v, want hash_mismatch", warnings[0])
	}
	if !apperr.HashMismatch.IsWarning() {
		t.Fatalf("HashMismatch should be a warning kind")
	}
}

func TestCheckSkipsAssetsNotInManifest(t *testing.T) {
	m := Manifest{}
	warnings := Check(m, map[string][]byte{"wordlist": []byte("anything")})
	if len(warnings) != 0 {
		t.Fatalf("got warnings %v, want none for unmanifested asset", warnings)
	}
}

func TestParseDigestRejectsBadFormat(t *testing.T) {
	if _, err := ParseDigest("not-a-digest"); err == nil {
		t.Fatalf("expected error for malformed digest")
	}
	if _, err := ParseDigest("md5:abc123"); err == nil {
		t.Fatalf("expected error for unsupported algorithm")
	}
}
