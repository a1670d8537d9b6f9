package loader

import (
	"os"
	"strings"

	"github.com/passforge/passforge/core/account"
	"github.com/passforge/passforge/core/apperr"
	"github.com/passforge/passforge/core/integrity"
)

// Decryptor opens a `.gpg`/`.asc` account file's armored content. It is
// satisfied directly by *core/envelope.Adapter; kept as a narrow interface
// here so core/loader never imports core/envelope (or transitively GPG)
// when a caller only wants to load plaintext account files, e.g. in tests.
type Decryptor interface {
	Decrypt(ciphertext string, prompt func(string) (string, error)) (string, error)
}

// Options configures a Load call.
type Options struct {
	// Mask is account_file_mask: the widest permission bits an account file
	// may carry before it's flagged or tightened.
	Mask os.FileMode
	// Policy selects warn-and-continue vs auto-tighten for loose files.
	Policy PermissionPolicy
	// Decrypt opens `.gpg`/`.asc` files. Required if the index names any.
	Decrypt Decryptor
	// Prompt supplies a GPG passphrase when Decrypt needs one.
	Prompt func(string) (string, error)
	// Manifest is the hashes manifest checked against Assets at startup
	// (spec §4.6's "integrity hashes over the generator implementations").
	// A nil or empty Manifest skips the check entirely.
	Manifest integrity.Manifest
	// Assets are the named fragments Manifest's digests are checked
	// against.
	Assets map[string][]byte
}

// Result is everything Load produces: the merged account registry, every
// non-fatal warning collected along the way (loose permissions, duplicate
// aliases, stale/mismatched integrity hashes), and the list of account file
// paths the index named (so a caller can, e.g., find the most recently
// modified one for archive-staleness comparison). None of the warnings
// abort the load, per spec §4.6 and §7.
type Result struct {
	Registry *account.Registry
	Warnings []error
	Files    []string
}

// Load reads the index file at indexPath, loads and parses every account
// file it names (decrypting `.gpg`/`.asc` entries first), enforces the
// permission policy on each, merges every account into one Registry
// (duplicate canonical names are a fatal AmbiguousName error; duplicate
// aliases are warnings), and finally runs the startup integrity check.
func Load(indexPath string, opts Options) (*Result, error) {
	paths, err := readIndex(indexPath)
	if err != nil {
		return nil, err
	}

	registry := account.NewRegistry()
	var warnings []error

	for _, p := range paths {
		if opts.Mask != 0 {
			if permErr := checkPermissions(p, opts.Mask, opts.Policy); permErr != nil {
				if apperr.Is(permErr, apperr.FilePermissionLoose) {
					warnings = append(warnings, permErr)
				} else {
					return nil, permErr
				}
			}
		}

		data, err := readAccountFile(p, opts)
		if err != nil {
			return nil, err
		}
		fr, err := parseFile(data, p)
		if err != nil {
			return nil, err
		}
		for _, rec := range fr.Accounts {
			acc, err := buildAccount(rec, fr.MasterSeed, p)
			if err != nil {
				return nil, err
			}
			aliasWarnings, err := registry.Add(acc)
			if err != nil {
				return nil, err
			}
			for _, w := range aliasWarnings {
				warnings = append(warnings, apperr.New(apperr.AmbiguousName, p, "%s", w))
			}
		}
	}

	if len(opts.Manifest) > 0 {
		for _, err := range integrity.Check(opts.Manifest, opts.Assets) {
			warnings = append(warnings, err)
		}
	}

	return &Result{Registry: registry, Warnings: warnings, Files: paths}, nil
}

// readAccountFile returns an account file's plaintext content, decrypting
// it first if its path ends in .gpg or .asc, per spec §4.6.
func readAccountFile(path string, opts Options) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.IOFailure, path, err, "reading account file %s", path)
	}
	if !isEncrypted(path) {
		return raw, nil
	}
	if opts.Decrypt == nil {
		return nil, apperr.New(apperr.UserKeyMissing, path, "%s is encrypted but no decryptor was configured", path)
	}
	plaintext, err := opts.Decrypt.Decrypt(string(raw), opts.Prompt)
	if err != nil {
		return nil, apperr.Wrap(apperr.DecryptionFailed, path, err, "decrypting account file %s", path)
	}
	return []byte(plaintext), nil
}

func isEncrypted(path string) bool {
	return strings.HasSuffix(path, ".gpg") || strings.HasSuffix(path, ".asc")
}
