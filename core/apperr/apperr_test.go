package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(UnknownField, "bigbank.questions.1", "field %q not found", "questions")
	got := err.Error()
	want := `unknown_field: field "questions" not found (culprit: bigbank.questions.1)`
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("short read")
	err := Wrap(DecryptionFailed, "bigbank", cause, "decrypting account file")

	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the wrapped cause")
	}
	if !errors.Is(err, DecryptionFailed) {
		t.Fatalf("expected errors.Is to match the Kind sentinel")
	}
}

func TestKindOf(t *testing.T) {
	err := New(MasterSeedMissing, "login", "no master seed in scope")
	kind, ok := KindOf(err)
	if !ok || kind != MasterSeedMissing {
		t.Fatalf("KindOf = (%v, %v), want (%v, true)", kind, ok, MasterSeedMissing)
	}

	wrapped := fmt.Errorf("loading account: %w", err)
	kind, ok = KindOf(wrapped)
	if !ok || kind != MasterSeedMissing {
		t.Fatalf("KindOf through fmt.Errorf wrap = (%v, %v), want (%v, true)", kind, ok, MasterSeedMissing)
	}
}

func TestIsWarning(t *testing.T) {
	for _, k := range []Kind{FilePermissionLoose, ArchiveStale, HashMismatch} {
		if !k.IsWarning() {
			t.Errorf("%s: IsWarning() = false, want true", k)
		}
	}
	for _, k := range []Kind{UnknownAccount, MasterSeedMissing, DecryptionFailed} {
		if k.IsWarning() {
			t.Errorf("%s: IsWarning() = true, want false", k)
		}
	}
}

func TestSanitizeRedactsSeedAssignments(t *testing.T) {
	s := NewSanitizer()
	cleaned, redacted := s.Sanitize("failed parsing line: master_seed: c2VjcmV0IG1lc3NhZ2U")
	if !redacted {
		t.Fatalf("expected redaction to trigger")
	}
	if cleaned == "failed parsing line: master_seed: c2VjcmV0IG1lc3NhZ2U" {
		t.Fatalf("expected seed value to be redacted, got %q", cleaned)
	}
}

func TestSanitizeLeavesPlainTextAlone(t *testing.T) {
	s := NewSanitizer()
	cleaned, redacted := s.Sanitize("unknown field: passcode")
	if redacted {
		t.Fatalf("did not expect redaction for plain message, got %q", cleaned)
	}
}
