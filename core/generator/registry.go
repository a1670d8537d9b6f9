package generator

import "github.com/passforge/passforge/core/apperr"

// Spec is the declarative, loader-facing description of a generator: a kind
// tag plus the parameter bag core/loader parses out of an account file
// record. It exists so core/loader never needs to know the concrete Go type
// behind a generator kind, the same separation core/rules.Loader keeps
// between a rule's YAML record and its compiled Rule.
type Spec struct {
	Kind            Kind            `yaml:"kind"`
	Alphabet        string          `yaml:"alphabet,omitempty"`
	Length          int             `yaml:"length,omitempty"`
	ShiftSort       bool            `yaml:"shift_sort,omitempty"`
	Prefix          string          `yaml:"prefix,omitempty"`
	Suffix          string          `yaml:"suffix,omitempty"`
	Sep             string          `yaml:"sep,omitempty"`
	Wordlist        []string        `yaml:"wordlist,omitempty"`
	Digits          string          `yaml:"digits,omitempty"`
	Text            string          `yaml:"text,omitempty"`
	Answer          string          `yaml:"answer,omitempty"`
	Groups          []AlphabetCount `yaml:"groups,omitempty"`
	DefAlphabet     string          `yaml:"def_alphabet,omitempty"`
	Recipe          string          `yaml:"recipe,omitempty"`
	Year            int             `yaml:"year,omitempty"`
	MinAge          int             `yaml:"min_age,omitempty"`
	MaxAge          int             `yaml:"max_age,omitempty"`
	Format          string          `yaml:"format,omitempty"`
	Secret          string          `yaml:"secret,omitempty"`
	IntervalSeconds int             `yaml:"interval_seconds,omitempty"`
	NumDigits       int             `yaml:"num_digits,omitempty"`
	Path            string          `yaml:"path,omitempty"`
	Content         string          `yaml:"content,omitempty"`
	Mode            uint32          `yaml:"mode,omitempty"`
}

// Build constructs the concrete Generator named by s.Kind. Returns
// apperr.BadRecipe for an unrecognized kind.
func Build(s Spec) (Generator, error) {
	switch s.Kind {
	case KindPassword:
		return Password{
			Alphabet: s.Alphabet, Length: s.Length, ShiftSort: s.ShiftSort,
			Prefix: s.Prefix, Suffix: s.Suffix, Sep: s.Sep,
		}, nil
	case KindPassphrase:
		return Passphrase{Wordlist: s.Wordlist, Length: s.Length, Sep: s.Sep}, nil
	case KindPIN:
		return PIN{Digits: s.Digits, Length: s.Length}, nil
	case KindQuestion:
		return Question{Text: s.Text, Answer: s.Answer, Length: s.Length, Wordlist: s.Wordlist, Sep: s.Sep}, nil
	case KindMixedPassword:
		return MixedPassword{Groups: s.Groups, Length: s.Length, DefAlphabet: s.DefAlphabet}, nil
	case KindPasswordRecipe:
		return PasswordRecipe{Recipe: s.Recipe, DefAlphabet: s.DefAlphabet}, nil
	case KindBirthDate:
		return BirthDate{Year: s.Year, MinAge: s.MinAge, MaxAge: s.MaxAge, Format: s.Format}, nil
	case KindOTP:
		interval := s.IntervalSeconds
		digits := s.NumDigits
		return newOTP(s.Secret, interval, digits), nil
	case KindWriteFile:
		return WriteFile{Path: s.Path, Content: s.Content, Mode: fileModeOf(s.Mode)}, nil
	default:
		return nil, apperr.New(apperr.BadRecipe, "", "unknown generator kind %q", s.Kind)
	}
}
