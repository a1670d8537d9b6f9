// Package archive implements spec §4.8's archive/changed operations: a
// canonical structured dump of every non-stealth account's materialized
// fields (including generated secrets), written through the envelope
// adapter with the previous archive rotated aside first, plus a structural
// diff against the prior dump. Save/Load's atomic-write-then-rename and
// rotate-before-overwrite shape is grounded directly on
// core/baseline.Baseline's Load/Save.
package archive

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/passforge/passforge/core/account"
	"github.com/passforge/passforge/core/apperr"
)

// schemaVersion is bumped if Dump's shape ever changes incompatibly.
const schemaVersion = "1.0.0"

// Dump is the canonical structured snapshot spec §4.8 describes: every
// non-stealth account's fully materialized fields. Keys are serialized in
// sorted order by encoding/json's map handling, giving the "stable key
// ordering" the spec requires without a bespoke ordered-map type — the
// dump is a point-in-time export for diffing, not a live account model
// that needs declaration order preserved.
type Dump struct {
	SchemaVersion string                    `json:"schema_version"`
	Accounts      map[string]map[string]any `json:"accounts"`
}

// Build materializes every field of every non-stealth account in accounts,
// using envOf to derive each account's seed identity Env.
func Build(accounts []*account.Account, envOf func(*account.Account) account.Env) (*Dump, error) {
	dump := &Dump{SchemaVersion: schemaVersion, Accounts: make(map[string]map[string]any)}
	for _, acc := range accounts {
		if acc.Stealth {
			continue
		}
		env := envOf(acc)
		fields := make(map[string]any, len(acc.Fields.Keys()))
		for _, name := range acc.Fields.Keys() {
			val, err := account.GetComposite(env, acc, name)
			if err != nil {
				return nil, err
			}
			fields[name] = val
		}
		dump.Accounts[acc.CanonicalName] = fields
	}
	return dump, nil
}

// Encryptor is the subset of *core/envelope.Adapter Save needs to seal a
// dump, per spec §4.9's encrypt/symmetric_encrypt operations.
type Encryptor interface {
	EncryptSymmetric(plaintext, passphrase string) (string, error)
	EncryptToRecipients(plaintext string, recipients []string) (string, error)
}

// Decryptor is the subset *core/envelope.Adapter needs to open a prior
// archive for Load.
type Decryptor interface {
	Decrypt(ciphertext string, prompt func(string) (string, error)) (string, error)
}

// SaveOptions selects how Save seals the archive: to a set of GPG
// recipients (Recipients non-empty) or under a passphrase (Passphrase
// non-empty). Exactly one should be set.
type SaveOptions struct {
	Recipients []string
	Passphrase string
}

// Save canonically serializes dump, rotates any existing file at path to
// previousPath first, then writes the new archive atomically (temp file +
// rename), sealed through enc per opts.
func Save(dump *Dump, path, previousPath string, enc Encryptor, opts SaveOptions) error {
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return apperr.Wrap(apperr.IOFailure, path, err, "marshaling archive")
	}

	var sealed string
	switch {
	case len(opts.Recipients) > 0:
		sealed, err = enc.EncryptToRecipients(string(data), opts.Recipients)
	case opts.Passphrase != "":
		sealed, err = enc.EncryptSymmetric(string(data), opts.Passphrase)
	default:
		return apperr.New(apperr.EncryptionFailed, path, "archive: no recipients or passphrase configured")
	}
	if err != nil {
		return apperr.Wrap(apperr.EncryptionFailed, path, err, "sealing archive")
	}

	if _, err := os.Stat(path); err == nil {
		if previousPath != "" {
			if err := os.Rename(path, previousPath); err != nil {
				return apperr.Wrap(apperr.IOFailure, path, err, "rotating previous archive to %s", previousPath)
			}
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return apperr.Wrap(apperr.IOFailure, path, err, "creating archive directory")
	}
	tmp, err := os.CreateTemp(dir, ".archive-*.tmp")
	if err != nil {
		return apperr.Wrap(apperr.IOFailure, path, err, "creating temp archive file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(sealed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperr.Wrap(apperr.IOFailure, path, err, "writing archive")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperr.Wrap(apperr.IOFailure, path, err, "closing archive temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperr.Wrap(apperr.IOFailure, path, err, "renaming archive into place")
	}
	return nil
}

// Load opens and parses the archive at path, decrypting it through dec
// first.
func Load(path string, dec Decryptor, prompt func(string) (string, error)) (*Dump, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.IOFailure, path, err, "reading archive %s", path)
	}
	plaintext, err := dec.Decrypt(string(raw), prompt)
	if err != nil {
		return nil, apperr.Wrap(apperr.DecryptionFailed, path, err, "decrypting archive %s", path)
	}
	var dump Dump
	if err := json.Unmarshal([]byte(plaintext), &dump); err != nil {
		return nil, apperr.Wrap(apperr.IOFailure, path, err, "parsing archive %s", path)
	}
	return &dump, nil
}
