package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/passforge/passforge/core/account"
	"github.com/passforge/passforge/core/apperr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", p, err)
	}
	return p
}

const sampleAccountFile = `
master_seed: "correct horse battery staple"
accounts:
  - name: chase
    aliases: [chase-bank]
    fields:
      username: rand
      passcode:
        generate:
          kind: password
          length: 12
      login:
        script: "{username}{tab}{passcode}{return}"
`

func TestLoadMergesAccountsAndResolvesFields(t *testing.T) {
	dir := t.TempDir()
	acctPath := writeFile(t, dir, "chase.yaml", sampleAccountFile)
	indexPath := writeFile(t, dir, "index", acctPath+"\n")

	result, err := Load(indexPath, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}

	acc, err := result.Registry.Lookup("chase-bank")
	if err != nil {
		t.Fatalf("Lookup by alias: %v", err)
	}
	if acc.MasterSeed != "correct horse battery staple" {
		t.Fatalf("master seed = %q", acc.MasterSeed)
	}

	env := account.Env{MasterSeed: acc.MasterSeed, AccountSeed: acc.AccountSeed}
	val, err := account.GetValue(env, acc, "username")
	if err != nil {
		t.Fatalf("GetValue username: %v", err)
	}
	if val != "rand" {
		t.Fatalf("username = %v", val)
	}

	pass, err := account.GetValue(env, acc, "passcode")
	if err != nil {
		t.Fatalf("GetValue passcode: %v", err)
	}
	if s, ok := pass.(string); !ok || len(s) != 12 {
		t.Fatalf("passcode = %v", pass)
	}
}

func TestLoadRejectsDuplicateAccountName(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFile(t, dir, "a.yaml", `
master_seed: seed
accounts:
  - name: chase
    fields: {}
`)
	p2 := writeFile(t, dir, "b.yaml", `
master_seed: seed
accounts:
  - name: Chase
    fields: {}
`)
	indexPath := writeFile(t, dir, "index", p1+"\n"+p2+"\n")

	_, err := Load(indexPath, Options{})
	if !apperr.Is(err, apperr.AmbiguousName) {
		t.Fatalf("got %v, want ambiguous_name", err)
	}
}

func TestLoadReportsDuplicateAliasAsWarning(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.yaml", `
master_seed: seed
accounts:
  - name: chase
    aliases: [bank]
    fields: {}
  - name: wells
    aliases: [bank]
    fields: {}
`)
	indexPath := writeFile(t, dir, "index", p+"\n")

	result, err := Load(indexPath, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Warnings) != 1 || !apperr.Is(result.Warnings[0], apperr.AmbiguousName) {
		t.Fatalf("warnings = %v", result.Warnings)
	}
	if len(result.Registry.All()) != 2 {
		t.Fatalf("expected both accounts still registered")
	}
}

func TestLoadFlagsLoosePermissionsAsWarning(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.yaml", `
master_seed: seed
accounts:
  - name: chase
    fields: {}
`)
	if err := os.Chmod(p, 0o644); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	indexPath := writeFile(t, dir, "index", p+"\n")

	result, err := Load(indexPath, Options{Mask: 0o600, Policy: PermissionWarn})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Warnings) != 1 || !apperr.Is(result.Warnings[0], apperr.FilePermissionLoose) {
		t.Fatalf("warnings = %v", result.Warnings)
	}
}

func TestLoadTightensPermissionsWhenPolicyIsTighten(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.yaml", `
master_seed: seed
accounts:
  - name: chase
    fields: {}
`)
	if err := os.Chmod(p, 0o644); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	indexPath := writeFile(t, dir, "index", p+"\n")

	result, err := Load(indexPath, Options{Mask: 0o600, Policy: PermissionTighten})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %o, want 0600", info.Mode().Perm())
	}
}

func TestLoadEncryptedFileRequiresDecryptor(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.yaml.gpg", "armored-ciphertext")
	indexPath := writeFile(t, dir, "index", p+"\n")

	_, err := Load(indexPath, Options{})
	if !apperr.Is(err, apperr.UserKeyMissing) {
		t.Fatalf("got %v, want user_key_missing", err)
	}
}

type fakeDecryptor struct {
	plaintext string
}

func (f fakeDecryptor) Decrypt(ciphertext string, prompt func(string) (string, error)) (string, error) {
	return f.plaintext, nil
}

func TestLoadDecryptsEncryptedAccountFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.yaml.gpg", "armored-ciphertext")
	indexPath := writeFile(t, dir, "index", p+"\n")

	result, err := Load(indexPath, Options{Decrypt: fakeDecryptor{plaintext: `
master_seed: seed
accounts:
  - name: chase
    fields: {}
`}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := result.Registry.Lookup("chase"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
}
