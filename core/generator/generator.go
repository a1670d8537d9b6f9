package generator

import (
	"os"
	"time"
)

// Kind identifies a generator's type tag in an account file, per spec §3's
// "Generated" field variant.
type Kind string

const (
	KindPassword       Kind = "password"
	KindPassphrase     Kind = "passphrase"
	KindPIN            Kind = "pin"
	KindQuestion       Kind = "question"
	KindMixedPassword  Kind = "mixed_password"
	KindPasswordRecipe Kind = "password_recipe"
	KindBirthDate      Kind = "birth_date"
	KindOTP            Kind = "otp"
	KindWriteFile      Kind = "write_file"
)

// Env carries everything a Generator needs beyond its own parameters: a
// budgeted seed stream, a clock (for OTP, the one generator whose output
// depends on wall time rather than purely on the seed), and a file-write
// sink (for WriteFile's side effect). Passing these in rather than reaching
// for time.Now()/os.WriteFile directly keeps every generator a pure
// function of its inputs, per Design Notes "Lazy field evaluation under
// identity feedback" and "File-system side effects in WriteFile".
type Env struct {
	Budget    *Budget
	Now       func() time.Time
	WriteFile func(path string, content []byte, mode os.FileMode) error
}

// Generator produces a deterministic string from an Env. WriteFile is the
// one implementation whose Materialize call has a side effect in addition
// to returning a value (spec Design Notes: "materialize_side_effect action,
// distinct from pure value materialization").
type Generator interface {
	Kind() Kind
	Materialize(env *Env) (string, error)
}
