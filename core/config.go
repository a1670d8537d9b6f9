// Package core wires the account loader, discovery engine, and archive
// together behind a single process-wide handle, per spec §4.10's public
// facade.
package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings is the immutable, explicitly-passed configuration record spec §6
// describes ("Pass an immutable settings record explicitly through the
// engine; avoid ambient mutable state so tests can run with fabricated
// settings."). It is decoded from YAML the way the teacher decoded
// .nox.yaml in the original core/config.go, but every field here names one
// of spec §6's actual settings keys instead of scan-policy knobs.
type Settings struct {
	// Storage locations.
	LogFile             string `yaml:"log_file"`
	ArchiveFile         string `yaml:"archive_file"`
	PreviousArchiveFile string `yaml:"previous_archive_file"`
	ArchiveStaleDays    int    `yaml:"archive_stale"`

	// Field resolution defaults.
	DefaultField       string   `yaml:"default_field"`
	DefaultVectorField string   `yaml:"default_vector_field"`
	DynamicFields      []string `yaml:"dynamic_fields"`
	HiddenFields       []string `yaml:"hidden_fields"`
	CredentialIDs      []string `yaml:"credential_ids"`
	CredentialSecrets  []string `yaml:"credential_secrets"`

	// Typing/output pacing.
	DisplayTime int    `yaml:"display_time"`
	MSPerChar   int    `yaml:"ms_per_char"`
	Encoding    string `yaml:"encoding"`

	// Editing.
	EditAccount  string `yaml:"edit_account"`
	EditTemplate string `yaml:"edit_template"`

	// Discovery/host collaborators.
	Browsers        []string          `yaml:"browsers"`
	DefaultBrowser  string            `yaml:"default_browser"`
	CommandAliases  map[string]string `yaml:"command_aliases"`
	DefaultProtocol string            `yaml:"default_protocol"`

	// Filesystem permission policy.
	ConfigDirMask   uint32 `yaml:"config_dir_mask"`
	AccountFileMask uint32 `yaml:"account_file_mask"`

	// Display.
	LabelColor     string `yaml:"label_color"`
	HighlightColor string `yaml:"highlight_color"`
	ColorScheme    string `yaml:"color_scheme"`
	UsePager       bool   `yaml:"use_pager"`
	Verbose        bool   `yaml:"verbose"`

	SelectionUtility       string            `yaml:"selection_utility"`
	AccountTemplates       map[string]string `yaml:"account_templates"`
	DefaultAccountTemplate string            `yaml:"default_account_template"`

	// GPG / envelope adapter.
	GPGIDs        []string `yaml:"gpg_ids"`
	GPGArmor      bool     `yaml:"gpg_armor"`
	GPGHome       string   `yaml:"gpg_home"`
	GPGExecutable string   `yaml:"gpg_executable"`

	// Host-side executables the spec explicitly treats as external
	// collaborators (§1, §6) — passforge never execs these itself, but
	// hostcli implementations read them from Settings.
	XdotoolExecutable string `yaml:"xdotool_executable"`
	XselExecutable    string `yaml:"xsel_executable"`
	DmenuExecutable   string `yaml:"dmenu_executable"`
}

// defaults mirrors the original system's documented fallbacks for settings
// a file may omit.
func defaults() Settings {
	return Settings{
		ArchiveStaleDays: 7,
		DefaultField:     "passcode",
		DefaultProtocol:  "https",
		ConfigDirMask:    0o700,
		AccountFileMask:  0o600,
		ColorScheme:      "dark",
	}
}

// DynamicFieldSet returns DynamicFields as a lookup set, for
// core/archive.Diff.
func (s Settings) DynamicFieldSet() map[string]bool {
	set := make(map[string]bool, len(s.DynamicFields))
	for _, f := range s.DynamicFields {
		set[f] = true
	}
	return set
}

// HiddenFieldSet returns HiddenFields as a lookup set, for
// core/account.Account.HiddenFields.
func (s Settings) HiddenFieldSet() map[string]bool {
	set := make(map[string]bool, len(s.HiddenFields))
	for _, f := range s.HiddenFields {
		set[f] = true
	}
	return set
}

// LoadSettings reads path (typically config.yaml under the config
// directory) and merges it over defaults(). A missing file yields
// defaults() with no error, matching the teacher's "no .nox.yaml" fallback.
func LoadSettings(path string) (*Settings, error) {
	s := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &s, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// ResolvePath joins a settings-relative path (archive_file,
// previous_archive_file, log_file) against dir unless it is already
// absolute, matching how the original system resolves its config-relative
// paths against the config directory.
func ResolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
