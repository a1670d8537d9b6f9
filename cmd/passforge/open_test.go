package main

import (
	"os"
	"path/filepath"
	"testing"
)

const cmdFixtureAccount = `
master_seed: "correct horse battery staple"
accounts:
  - name: chase
    fields:
      username: rand
      passcode:
        generate:
          kind: password
          length: 12
`

func writeCmdFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	acctPath := filepath.Join(dir, "chase.yaml")
	if err := os.WriteFile(acctPath, []byte(cmdFixtureAccount), 0o600); err != nil {
		t.Fatalf("writing account file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "accounts"), []byte(acctPath+"\n"), 0o600); err != nil {
		t.Fatalf("writing index: %v", err)
	}
	return dir
}

func TestOpenGeneratorLoadsAccountsWithDefaultsWhenConfigMissing(t *testing.T) {
	dir := writeCmdFixture(t)

	gen, err := openGenerator(dir)
	if err != nil {
		t.Fatalf("openGenerator: %v", err)
	}
	if len(gen.AllAccounts()) != 1 {
		t.Fatalf("AllAccounts = %v", gen.AllAccounts())
	}

	val, err := gen.GetValue("chase", "username")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if val.Value != "rand" {
		t.Fatalf("username = %+v", val)
	}
}
