// Package loader implements spec §4.6's account file loader: a plain index
// of account file paths, decrypt-then-parse for `.gpg`/`.asc` entries,
// permission policy enforcement, and duplicate account/alias detection. The
// read-validate-merge shape mirrors core/rules.LoadRulesFromFile/
// LoadRulesFromDir, extended with decryption ahead of parsing and a typed
// value grammar in place of rules.Rule's flat record.
package loader

import (
	"gopkg.in/yaml.v3"

	"github.com/passforge/passforge/core/account"
	"github.com/passforge/passforge/core/apperr"
)

// fileRecord is the top-level shape of one account file: a module-scoped
// master_seed plus a sequence of account definitions, per spec §4.6's
// "module-scoped variables... and a sequence of account definitions".
type fileRecord struct {
	MasterSeed string          `yaml:"master_seed"`
	Accounts   []accountRecord `yaml:"accounts"`
}

type accountRecord struct {
	Name         string    `yaml:"name"`
	NameOverride string    `yaml:"name_override"`
	Aliases      []string  `yaml:"aliases"`
	AccountSeed  string    `yaml:"account_seed"`
	Stealth      bool      `yaml:"stealth"`
	HiddenFields []string  `yaml:"hidden_fields"`
	Fields       yaml.Node `yaml:"fields"`
}

// parseFile decodes the YAML content of one account file into its records.
func parseFile(data []byte, path string) (fileRecord, error) {
	var fr fileRecord
	if err := yaml.Unmarshal(data, &fr); err != nil {
		return fileRecord{}, apperr.Wrap(apperr.BadRecipe, path, err, "parsing account file %s", path)
	}
	return fr, nil
}

// buildAccount turns one accountRecord into an *account.Account, resolving
// its fields through account.DecodeValueNode.
func buildAccount(rec accountRecord, masterSeed string, path string) (*account.Account, error) {
	if rec.Name == "" {
		return nil, apperr.New(apperr.BadRecipe, path, "account record missing name")
	}
	acc := account.New(account.CanonicalName(rec.Name))
	acc.NameOverride = rec.NameOverride
	acc.Aliases = rec.Aliases
	acc.MasterSeed = masterSeed
	acc.Stealth = rec.Stealth
	if rec.AccountSeed != "" {
		acc.AccountSeed = rec.AccountSeed
	} else if rec.Stealth {
		// A stealth account keeps no on-disk seed; account.New's
		// canonical-name default must not leak in as a substitute one.
		acc.AccountSeed = ""
	}
	if len(rec.HiddenFields) > 0 {
		acc.HiddenFields = make(map[string]bool, len(rec.HiddenFields))
		for _, f := range rec.HiddenFields {
			acc.HiddenFields[f] = true
		}
	}

	if rec.Fields.Kind == 0 {
		return acc, nil
	}
	val, err := account.DecodeValueNode(&rec.Fields, path)
	if err != nil {
		return nil, err
	}
	mapping, ok := val.(*account.Mapping)
	if !ok {
		return nil, apperr.New(apperr.BadRecipe, path, "account %s: fields must be a mapping", rec.Name)
	}
	acc.Fields = mapping
	return acc, nil
}
