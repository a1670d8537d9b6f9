package core

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/passforge/passforge/core/account"
	"github.com/passforge/passforge/core/alphabet"
	"github.com/passforge/passforge/core/apperr"
	"github.com/passforge/passforge/core/archive"
	"github.com/passforge/passforge/core/discovery"
	"github.com/passforge/passforge/core/envelope"
	"github.com/passforge/passforge/core/integrity"
	"github.com/passforge/passforge/core/loader"
	"github.com/passforge/passforge/core/obscure"
	"github.com/passforge/passforge/core/script"
	"gopkg.in/yaml.v3"
)

// Generator is the process-wide handle spec §4.10's public facade
// describes: a loaded account registry plus the settings that govern field
// resolution, permission enforcement, and the envelope adapter, wired
// together the way the teacher's RunScan orchestrated discovery + analyzers
// into one ScanResult in the original core/scan.go.
type Generator struct {
	Settings Settings
	Registry *account.Registry
	Envelope *envelope.Adapter
	Warnings []error

	// Prompt supplies passphrases and stealth-account seeds interactively;
	// nil disables prompting (any field requiring one fails instead).
	Prompt func(string) (string, error)
	Now    func() time.Time
}

// Open loads the account index at indexPath under settings, returning a
// ready-to-use Generator, per spec §4.10's "open_generator()... loads all
// files, warns on permission issues, checks hashes, verifies archive
// freshness." configDir locates the sibling `hashes` manifest (spec §6) and
// anchors Settings.ArchiveFile for the freshness check. Non-fatal problems
// (loose permissions, duplicate aliases, stale/mismatched integrity hashes,
// a stale archive) are collected in Generator.Warnings rather than failing
// the open.
func Open(indexPath, configDir string, settings Settings, kr *envelope.Keyring, prompt func(string) (string, error)) (*Generator, error) {
	adapter := envelope.New(kr)
	manifest, err := loadManifest(ResolvePath(configDir, "hashes"))
	if err != nil {
		return nil, err
	}
	result, err := loader.Load(indexPath, loader.Options{
		Mask:     os.FileMode(orMask(settings.AccountFileMask)),
		Policy:   loader.PermissionWarn,
		Decrypt:  adapter,
		Prompt:   prompt,
		Manifest: manifest,
		Assets:   map[string][]byte{"wordlist": []byte(alphabet.WordlistAsset())},
	})
	if err != nil {
		return nil, err
	}
	for _, acc := range result.Registry.All() {
		acc.HiddenFields = settings.HiddenFieldSet()
	}
	gen := &Generator{
		Settings: settings,
		Registry: result.Registry,
		Envelope: adapter,
		Warnings: result.Warnings,
		Prompt:   prompt,
		Now:      time.Now,
	}
	if settings.ArchiveFile != "" {
		if staleErr := gen.CheckArchiveStale(configDir, mostRecentModTime(result.Files)); staleErr != nil {
			gen.Warnings = append(gen.Warnings, staleErr)
		}
	}
	return gen, nil
}

// loadManifest reads path (the `hashes` file spec §6 describes: a map of
// named fragments to their hex digests) as YAML. A missing file yields a
// nil Manifest and no error, matching LoadSettings' missing-file tolerance
// — a deployment with no hashes file simply skips the startup check.
func loadManifest(path string) (integrity.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.IOFailure, path, err, "reading hashes manifest %s", path)
	}
	var m integrity.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, apperr.Wrap(apperr.BadRecipe, path, err, "parsing hashes manifest %s", path)
	}
	return m, nil
}

// mostRecentModTime returns the latest modification time among paths, or
// the zero Time if none stat successfully. Against a zero Time,
// CheckArchiveStale reports only a missing archive as stale.
func mostRecentModTime(paths []string) time.Time {
	var latest time.Time
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if mt := info.ModTime(); mt.After(latest) {
			latest = mt
		}
	}
	return latest
}

func orMask(mask uint32) uint32 {
	if mask == 0 {
		return 0o600
	}
	return mask
}

// envFor builds the account.Env used to materialize acc's fields.
func (g *Generator) envFor(acc *account.Account) account.Env {
	now := g.Now
	if now == nil {
		now = time.Now
	}
	return account.Env{
		MasterSeed:  acc.MasterSeed,
		AccountSeed: acc.AccountSeed,
		ExtraSeed:   acc.ExtraSeed,
		Now:         now,
		Obscure: &obscure.Env{
			Prompt: g.Prompt,
			GPG:    g.Envelope,
		},
	}
}

// GetAccount resolves name (canonical name or alias) to its Account, per
// spec §4.10's "get_account(name, extra_seed?, stealth_name?)". extraSeed,
// when non-empty, is folded into every subsequent field's seed tuple via
// account.Env.ExtraSeed, letting the same account yield an alternate
// universe of values without touching its stored account_seed. stealthSeed
// resolves a stealth account's seed (account.ResolveStealthSeed) the first
// time it's looked up; if the account is already resolved, or isn't a
// stealth account, stealthSeed is ignored. A stealth account with no seed
// and no stealthSeed falls back to g.Prompt; with neither, lookup fails.
func (g *Generator) GetAccount(name, extraSeed, stealthSeed string) (*account.Account, error) {
	acc, err := g.Registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	if acc.Stealth && acc.AccountSeed == "" {
		if stealthSeed == "" && g.Prompt != nil {
			stealthSeed, err = g.Prompt("stealth seed for " + name)
			if err != nil {
				return nil, err
			}
		}
		if stealthSeed == "" {
			return nil, apperr.New(apperr.UserKeyMissing, name, "stealth account %q needs a seed and no prompt is available", name)
		}
		if err := account.ResolveStealthSeed(acc, stealthSeed); err != nil {
			return nil, err
		}
	}
	if extraSeed != "" {
		acc.ExtraSeed = extraSeed
	}
	return acc, nil
}

// GetValue resolves path on the named account to its materialized scalar
// value, wrapped in an AccountValue per spec §3/§4.10.
func (g *Generator) GetValue(name, path string) (AccountValue, error) {
	acc, err := g.GetAccount(name, "", "")
	if err != nil {
		return AccountValue{}, err
	}
	val, err := account.GetValue(g.envFor(acc), acc, path)
	if err != nil {
		return AccountValue{}, err
	}
	return g.toAccountValue(acc, path, val)
}

// GetComposite resolves path on the named account to its materialized
// subtree (scalar, slice, or map), wrapped in an AccountValue.
func (g *Generator) GetComposite(name, path string) (AccountValue, error) {
	acc, err := g.GetAccount(name, "", "")
	if err != nil {
		return AccountValue{}, err
	}
	val, err := account.GetComposite(g.envFor(acc), acc, path)
	if err != nil {
		return AccountValue{}, err
	}
	return g.toAccountValue(acc, path, val)
}

// toAccountValue assembles the AccountValue spec §3 describes around an
// already-materialized field value: Key is the path's top-level segment,
// IsSecret classifies the raw (unevaluated) Value at path rather than the
// materialized result, since a Generated/Obscured field is secret
// regardless of what it happens to evaluate to.
func (g *Generator) toAccountValue(acc *account.Account, path string, val any) (AccountValue, error) {
	segments, err := account.ParsePath(path)
	if err != nil {
		return AccountValue{}, err
	}
	raw, err := account.FieldValue(acc, path)
	if err != nil {
		return AccountValue{}, err
	}
	return AccountValue{
		Value:    val,
		IsSecret: account.IsSecretValue(raw),
		Name:     acc.CanonicalName,
		Key:      segments[0],
		Field:    path,
	}, nil
}

// DefaultFieldName resolves the field path "passforge get <account>" (with
// no field argument) should read, per spec §4.4's default-field chain: the
// account's own `default` field if it has one, else the first of
// Settings.DefaultField's space-separated candidates (falling back to
// account.DefaultFieldName's built-in passcode/password/passphrase chain
// when DefaultField is unset) that the account actually defines.
func (g *Generator) DefaultFieldName(name string) (string, error) {
	acc, err := g.GetAccount(name, "", "")
	if err != nil {
		return "", err
	}
	var candidates []string
	if g.Settings.DefaultField != "" {
		candidates = strings.Fields(g.Settings.DefaultField)
	}
	return acc.DefaultFieldName(candidates)
}

// AllAccounts returns every loaded account, in load order, skipping
// stealth accounts (they carry no persisted identity
// to list).
func (g *Generator) AllAccounts() []*account.Account {
	out := make([]*account.Account, 0, len(g.Registry.All()))
	for _, acc := range g.Registry.All() {
		if acc.Stealth {
			continue
		}
		out = append(out, acc)
	}
	return out
}

// Discover matches snapshot against every loaded account's discovery field,
// returning candidates for the host to disambiguate, per spec §4.7.
func (g *Generator) Discover(snapshot discovery.Snapshot) ([]discovery.Candidate, error) {
	entries := make([]discovery.Entry, 0, len(g.Registry.All()))
	for _, acc := range g.Registry.All() {
		entry, err := discovery.EntryFor(acc)
		if err != nil {
			return nil, err
		}
		if len(entry.Recognizers) > 0 {
			entries = append(entries, entry)
		}
	}
	return discovery.Discover(snapshot, entries)
}

// RunScript executes candidate.Script against its account, emitting output
// to sink through a fresh Pacer configured from Settings.MSPerChar.
func (g *Generator) RunScript(ctx context.Context, candidate discovery.Candidate, sink script.Sink) error {
	acc := candidate.Account
	tokens, err := script.Parse(candidate.Script)
	if err != nil {
		return err
	}
	pacer := script.NewPacer()
	if g.Settings.MSPerChar > 0 {
		pacer.SetMillisecondsPerChar(g.Settings.MSPerChar)
	}
	return script.Execute(ctx, tokens, script.ContextDiscovery, acc, g.envFor(acc), sink, pacer)
}

// Archive materializes every non-stealth account's fields and seals them to
// Settings.ArchiveFile, rotating any existing archive to
// Settings.PreviousArchiveFile first, per spec §4.8. When Settings.GPGIDs
// names recipients the archive is sealed to their public keys; otherwise
// g.Prompt is asked for a passphrase to seal it symmetrically.
func (g *Generator) Archive(configDir string) error {
	accounts := g.AllAccounts()
	dump, err := archive.Build(accounts, g.envFor)
	if err != nil {
		return err
	}
	path := ResolvePath(configDir, g.Settings.ArchiveFile)
	prevPath := ResolvePath(configDir, g.Settings.PreviousArchiveFile)
	opts := archive.SaveOptions{Recipients: g.Settings.GPGIDs}
	if len(opts.Recipients) == 0 {
		if g.Prompt == nil {
			return apperr.New(apperr.UserKeyMissing, path, "archive: no gpg_ids configured and no passphrase prompt available")
		}
		passphrase, err := g.Prompt("archive passphrase")
		if err != nil {
			return err
		}
		opts.Passphrase = passphrase
	}
	return archive.Save(dump, path, prevPath, g.Envelope, opts)
}

// Changed loads the archive at Settings.ArchiveFile and diffs it against a
// freshly built in-memory dump of the currently loaded accounts, excluding
// Settings.DynamicFields from field-level comparison, per spec §4.8.
func (g *Generator) Changed(configDir string) (archive.Changes, error) {
	path := ResolvePath(configDir, g.Settings.ArchiveFile)
	prev, err := archive.Load(path, g.Envelope, g.Prompt)
	if err != nil {
		return archive.Changes{}, err
	}
	curr, err := archive.Build(g.AllAccounts(), g.envFor)
	if err != nil {
		return archive.Changes{}, err
	}
	return archive.Diff(prev, curr, g.Settings.DynamicFieldSet()), nil
}

// CheckArchiveStale reports whether the archive is stale relative to the
// most recently modified loaded account file, per spec §7: the archive is
// stale when it is missing or its mtime is more than ArchiveStaleDays days
// before mostRecentAccountFile.
func (g *Generator) CheckArchiveStale(configDir string, mostRecentAccountFile time.Time) error {
	path := ResolvePath(configDir, g.Settings.ArchiveFile)
	return archive.WarnIfStale(path, mostRecentAccountFile, g.Settings.ArchiveStaleDays)
}
