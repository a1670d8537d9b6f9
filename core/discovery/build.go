package discovery

import (
	"time"

	"github.com/passforge/passforge/core/account"
	"github.com/passforge/passforge/core/apperr"
)

// EntryFor builds the discovery Entry for acc from its `discovery` tool
// field, per spec §4.7. The field is a sequence of single-key mappings,
// one key per recognizer kind (title/url/host/user/cwd/env_var/network/
// file/all/any) — the same "single-key mapping names the variant"
// convention core/loader uses for generate/obscure/script/write_file,
// reused here for the recognizer tree instead of the field-value ADT.
// An account with no `discovery` field yields an Entry with no
// recognizers, which never matches.
func EntryFor(acc *account.Account) (Entry, error) {
	v, ok := acc.Fields.Get("discovery")
	if !ok {
		return Entry{Account: acc}, nil
	}
	seq, ok := v.(account.Sequence)
	if !ok {
		return Entry{}, apperr.New(apperr.BadPath, acc.CanonicalName+".discovery", "discovery field must be a sequence of recognizers")
	}
	recognizers := make([]Recognizer, 0, len(seq))
	for i, item := range seq {
		r, err := buildRecognizer(item, acc.CanonicalName, i)
		if err != nil {
			return Entry{}, err
		}
		recognizers = append(recognizers, r)
	}
	return Entry{Account: acc, Recognizers: recognizers}, nil
}

func buildRecognizer(v account.Value, culprit string, index int) (Recognizer, error) {
	m, ok := v.(*account.Mapping)
	if !ok || len(m.Keys()) != 1 {
		return nil, apperr.New(apperr.BadPath, culprit, "discovery[%d] must be a single-key mapping naming a recognizer kind", index)
	}
	kind := m.Keys()[0]
	body, _ := m.Get(kind)
	fields, ok := body.(*account.Mapping)
	if !ok {
		return nil, apperr.New(apperr.BadPath, culprit, "discovery[%d].%s must be a mapping", index, kind)
	}

	script := stringField(fields, "script")
	name := stringField(fields, "name")

	switch kind {
	case "title":
		return NewTitle(stringListField(fields, "patterns"), script, name), nil
	case "url":
		return NewURL(stringListField(fields, "urls"), script, name,
			boolField(fields, "exact_path"), boolField(fields, "fragment"),
			orDefault(stringField(fields, "default_protocol"), "https")), nil
	case "host":
		return NewHost(stringListField(fields, "hosts"), script, name), nil
	case "user":
		return NewUser(stringListField(fields, "users"), script, name), nil
	case "cwd":
		return NewCWD(stringListField(fields, "paths"), script, name), nil
	case "env_var":
		return NewEnvVar(stringField(fields, "name"), stringField(fields, "value"), script, name), nil
	case "network":
		return NewNetwork(stringListField(fields, "macs"), script, name), nil
	case "file":
		var contents *string
		if s, ok := fields.Get("contents"); ok {
			if c, ok := s.(account.Constant); ok && !c.IsInt {
				contents = &c.Str
			}
		}
		ttl := time.Duration(intField(fields, "ttl_seconds")) * time.Second
		return NewFile(stringField(fields, "path"), script, name, contents, ttl), nil
	case "all", "any":
		childrenVal, ok := fields.Get("children")
		if !ok {
			return nil, apperr.New(apperr.BadPath, culprit, "discovery[%d].%s requires a children sequence", index, kind)
		}
		childSeq, ok := childrenVal.(account.Sequence)
		if !ok {
			return nil, apperr.New(apperr.BadPath, culprit, "discovery[%d].%s.children must be a sequence", index, kind)
		}
		children := make([]Recognizer, 0, len(childSeq))
		for j, c := range childSeq {
			child, err := buildRecognizer(c, culprit, index*1000+j)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if kind == "all" {
			return NewAll(children, script, name), nil
		}
		return NewAny(children, script, name), nil
	default:
		return nil, apperr.New(apperr.BadPath, culprit, "discovery[%d]: unrecognized recognizer kind %q", index, kind)
	}
}

func stringField(m *account.Mapping, key string) string {
	v, ok := m.Get(key)
	if !ok {
		return ""
	}
	c, ok := v.(account.Constant)
	if !ok || c.IsInt {
		return ""
	}
	return c.Str
}

func intField(m *account.Mapping, key string) int64 {
	v, ok := m.Get(key)
	if !ok {
		return 0
	}
	c, ok := v.(account.Constant)
	if !ok || !c.IsInt {
		return 0
	}
	return c.Int
}

func boolField(m *account.Mapping, key string) bool {
	return stringField(m, key) == "true"
}

func stringListField(m *account.Mapping, key string) []string {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	seq, ok := v.(account.Sequence)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		if c, ok := item.(account.Constant); ok && !c.IsInt {
			out = append(out, c.Str)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
