package main

import "testing"

func TestExtractConfigDirFlagBeforeSubcommand(t *testing.T) {
	configDir := "default"
	rest := extractConfigDirFlag([]string{"--config-dir", "/tmp/pf", "list"}, &configDir)
	if configDir != "/tmp/pf" {
		t.Fatalf("configDir = %q", configDir)
	}
	if len(rest) != 1 || rest[0] != "list" {
		t.Fatalf("rest = %v", rest)
	}
}

func TestExtractConfigDirFlagEqualsForm(t *testing.T) {
	configDir := "default"
	rest := extractConfigDirFlag([]string{"list", "--config-dir=/tmp/pf"}, &configDir)
	if configDir != "/tmp/pf" {
		t.Fatalf("configDir = %q", configDir)
	}
	if len(rest) != 1 || rest[0] != "list" {
		t.Fatalf("rest = %v", rest)
	}
}

func TestExtractConfigDirFlagAbsent(t *testing.T) {
	configDir := "default"
	rest := extractConfigDirFlag([]string{"get", "chase", "passcode"}, &configDir)
	if configDir != "default" {
		t.Fatalf("configDir = %q", configDir)
	}
	if len(rest) != 3 {
		t.Fatalf("rest = %v", rest)
	}
}
