package envelope

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// KeyEntry is a single trusted OpenPGP key, stored armored so the keyring
// file is both human-readable and diffable. This mirrors
// registry/trust.Keyring's Key/Keyring shape, swapped from Ed25519
// signing keys to OpenPGP encryption/decryption keys.
type KeyEntry struct {
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
	ArmoredKey  string `json:"armored_key"`
}

// Keyring holds the OpenPGP keys the envelope adapter trusts for decrypting
// account files, per spec §4.6's ".gpg/.asc" file handling.
type Keyring struct {
	Keys []KeyEntry `json:"keys"`
}

// NewKeyring returns an empty keyring.
func NewKeyring() *Keyring { return &Keyring{} }

// Add appends a key entry, skipping duplicates by fingerprint.
func (kr *Keyring) Add(entry KeyEntry) {
	for _, existing := range kr.Keys {
		if existing.Fingerprint == entry.Fingerprint {
			return
		}
	}
	kr.Keys = append(kr.Keys, entry)
}

// Find returns the key entry with the given fingerprint, or nil.
func (kr *Keyring) Find(fingerprint string) *KeyEntry {
	for i := range kr.Keys {
		if kr.Keys[i].Fingerprint == fingerprint {
			return &kr.Keys[i]
		}
	}
	return nil
}

// EntityList parses every armored key in the keyring into an
// openpgp.EntityList suitable for passing to openpgp.ReadMessage.
func (kr *Keyring) EntityList() (openpgp.EntityList, error) {
	var entities openpgp.EntityList
	for _, k := range kr.Keys {
		parsed, err := openpgp.ReadArmoredKeyRing(strings.NewReader(k.ArmoredKey))
		if err != nil {
			return nil, fmt.Errorf("parsing key %q: %w", k.Name, err)
		}
		entities = append(entities, parsed...)
	}
	return entities, nil
}

// LoadKeyring reads a keyring from a JSON file. A missing file yields an
// empty keyring without error, matching core's LoadSettings-style
// soft-missing-config convention.
func LoadKeyring(path string) (*Keyring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewKeyring(), nil
		}
		return nil, err
	}
	var kr Keyring
	if err := json.Unmarshal(data, &kr); err != nil {
		return nil, fmt.Errorf("corrupt keyring at %q: %w", path, err)
	}
	return &kr, nil
}

// SaveKeyring writes a keyring to path atomically (temp file + rename),
// following the same write pattern as registry/trust.SaveKeyring.
func SaveKeyring(path string, kr *Keyring) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating keyring dir: %w", err)
	}
	data, err := json.MarshalIndent(kr, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling keyring: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing temp keyring file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming keyring file: %w", err)
	}
	return nil
}

// DefaultKeyringPath returns ~/.passforge/keyring.json.
func DefaultKeyringPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".passforge", "keyring.json")
}
