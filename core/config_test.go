package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := LoadSettings(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing config.yaml, got: %v", err)
	}
	if s == nil {
		t.Fatal("expected non-nil settings")
	}
	if s.ArchiveStaleDays != 7 {
		t.Errorf("ArchiveStaleDays = %d, want default 7", s.ArchiveStaleDays)
	}
	if s.DefaultField != "passcode" {
		t.Errorf("DefaultField = %q, want default %q", s.DefaultField, "passcode")
	}
	if s.AccountFileMask != 0o600 {
		t.Errorf("AccountFileMask = %#o, want default 0600", s.AccountFileMask)
	}
}

func TestLoadSettingsParsesFileAndOverridesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `
archive_file: archive.gpg
previous_archive_file: archive.previous.gpg
archive_stale: 14
default_field: username
dynamic_fields:
  - session_token
  - last_login
hidden_fields:
  - security_questions
credential_ids:
  - username
  - account_number
credential_secrets:
  - passcode
gpg_ids:
  - alice@example.com
gpg_armor: true
account_file_mask: 384
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.ArchiveFile != "archive.gpg" {
		t.Errorf("ArchiveFile = %q", s.ArchiveFile)
	}
	if s.ArchiveStaleDays != 14 {
		t.Errorf("ArchiveStaleDays = %d, want 14 (overridden)", s.ArchiveStaleDays)
	}
	if s.DefaultField != "username" {
		t.Errorf("DefaultField = %q, want overridden %q", s.DefaultField, "username")
	}
	if len(s.DynamicFields) != 2 || s.DynamicFields[0] != "session_token" {
		t.Errorf("DynamicFields = %v", s.DynamicFields)
	}
	if len(s.GPGIDs) != 1 || s.GPGIDs[0] != "alice@example.com" {
		t.Errorf("GPGIDs = %v", s.GPGIDs)
	}
	if !s.GPGArmor {
		t.Error("GPGArmor = false, want true")
	}
	// account_file_mask: 384 decimal == 0600 octal.
	if s.AccountFileMask != 0o600 {
		t.Errorf("AccountFileMask = %#o, want 0600", s.AccountFileMask)
	}
	// Defaults not touched by the file should still apply.
	if s.DefaultProtocol != "https" {
		t.Errorf("DefaultProtocol = %q, want default %q", s.DefaultProtocol, "https")
	}
}

func TestLoadSettingsInvalidYAMLReturnsError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("archive_stale: [[[invalid"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSettings(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestLoadSettingsReadFileErrorPropagates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSettings(path)
	if err == nil {
		t.Fatal("expected error when config.yaml is a directory, got nil")
	}
}

func TestDynamicFieldSetAndHiddenFieldSet(t *testing.T) {
	t.Parallel()

	s := Settings{
		DynamicFields: []string{"session_token", "last_login"},
		HiddenFields:  []string{"security_questions"},
	}
	dyn := s.DynamicFieldSet()
	if !dyn["session_token"] || !dyn["last_login"] || dyn["passcode"] {
		t.Errorf("DynamicFieldSet() = %v", dyn)
	}
	hidden := s.HiddenFieldSet()
	if !hidden["security_questions"] || hidden["username"] {
		t.Errorf("HiddenFieldSet() = %v", hidden)
	}
}

func TestResolvePath(t *testing.T) {
	t.Parallel()

	if got := ResolvePath("/etc/passforge", "archive.gpg"); got != "/etc/passforge/archive.gpg" {
		t.Errorf("ResolvePath relative = %q", got)
	}
	if got := ResolvePath("/etc/passforge", "/var/archive.gpg"); got != "/var/archive.gpg" {
		t.Errorf("ResolvePath absolute = %q, want unchanged", got)
	}
	if got := ResolvePath("/etc/passforge", ""); got != "" {
		t.Errorf("ResolvePath empty = %q, want empty", got)
	}
}
