package account

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/passforge/passforge/core/apperr"
	"github.com/passforge/passforge/core/generator"
	"github.com/passforge/passforge/core/obscure"
	"github.com/passforge/passforge/core/seed"
)

// Env carries every input Evaluate needs to materialize a Value: the seed
// identity (master seed, account seed, field path, and the optional key/
// version/extra-seed components spec §3 lists for Generated fields), a
// clock and file-write sink for the generators that need them, and the
// obscurer dependencies (passphrase prompt, envelope adapter, user key).
type Env struct {
	MasterSeed  string
	AccountSeed string
	FieldPath   string
	Key         string
	Version     string
	ExtraSeed   string

	Now       func() time.Time
	WriteFile func(path string, content []byte, mode os.FileMode) error
	Obscure   *obscure.Env
}

// withPath returns a copy of env with a path segment appended, for
// recursing into sequences and mappings — each nested generator/obscurer
// still gets a distinct seed tuple, since FieldPath feeds the seed.
func (env Env) withPath(segment string) Env {
	if env.FieldPath != "" {
		env.FieldPath = env.FieldPath + "." + segment
	} else {
		env.FieldPath = segment
	}
	return env
}

// Evaluate materializes v under env: constants are returned as-is;
// sequences/mappings are evaluated element-wise; generators draw from a
// fresh seed.Stream built from env's identity; obscurers are opened via
// env.Obscure; scripts are returned as their raw template (core/script
// performs interpolation, since only it knows the enclosing account's other
// fields); WriteFile materializes its Content first, then performs the
// write as a side effect.
func Evaluate(env Env, v Value) (any, error) {
	switch val := v.(type) {
	case Constant:
		return val.Native(), nil

	case Sequence:
		out := make([]any, len(val))
		for i, item := range val {
			r, err := Evaluate(env.withPath(strconv.Itoa(i)), item)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil

	case *Mapping:
		out := make(map[string]any, len(val.Keys()))
		for _, k := range val.Keys() {
			item, _ := val.Get(k)
			r, err := Evaluate(env.withPath(k), item)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil

	case Generated:
		key := env.Key
		if val.Spec.Kind == generator.KindQuestion && val.Spec.Text != "" {
			key = strings.ToLower(val.Spec.Text)
		}
		tup := seed.Tuple{
			MasterSeed:  env.MasterSeed,
			AccountSeed: env.AccountSeed,
			FieldName:   env.FieldPath,
			Key:         key,
			Version:     env.Version,
			ExtraSeed:   env.ExtraSeed,
		}
		stream, err := seed.New(tup)
		if err != nil {
			return nil, apperr.Wrap(apperr.MasterSeedMissing, env.FieldPath, err, "evaluating generated field")
		}
		g, err := generator.Build(val.Spec)
		if err != nil {
			return nil, err
		}
		budget := generator.NewBudget(stream, env.FieldPath)
		genEnv := &generator.Env{Budget: budget, Now: env.Now, WriteFile: env.WriteFile}
		return g.Materialize(genEnv)

	case Obscured:
		o, err := obscure.Build(val.Spec)
		if err != nil {
			return nil, err
		}
		plaintext, err := o.Open(env.Obscure)
		if err != nil {
			return nil, apperr.Wrap(apperr.DecryptionFailed, env.FieldPath, err, "opening obscured field")
		}
		nested, err := ParseNested(plaintext, env.FieldPath)
		if err != nil {
			return nil, err
		}
		return Evaluate(env, nested)

	case Script:
		return val.Template, nil

	case WriteFile:
		content, err := Evaluate(env.withPath("content"), val.Content)
		if err != nil {
			return nil, err
		}
		contentStr, ok := content.(string)
		if !ok {
			return nil, apperr.New(apperr.CompositeNotScalar, env.FieldPath, "write_file content did not resolve to a scalar string")
		}
		wf := generator.WriteFile{Path: val.Path, Content: contentStr, Mode: fileModeOf(val.Mode)}
		return wf.Materialize(&generator.Env{WriteFile: env.WriteFile})

	default:
		return nil, apperr.New(apperr.BadPath, env.FieldPath, "unrecognized field value type %T", v)
	}
}

func fileModeOf(mode uint32) os.FileMode {
	if mode == 0 {
		return 0o600
	}
	return os.FileMode(mode)
}
