package generator

import (
	"testing"

	"github.com/passforge/passforge/core/apperr"
	"github.com/passforge/passforge/core/seed"
)

func newBudget(t *testing.T, tup seed.Tuple) *Budget {
	t.Helper()
	s, err := seed.New(tup)
	if err != nil {
		t.Fatalf("seed.New: %v", err)
	}
	return NewBudget(s, "test")
}

func TestPasswordDeterministic(t *testing.T) {
	tup := seed.Tuple{MasterSeed: "m", AccountSeed: "acct", FieldName: "password"}
	p := Password{Length: 12}

	env1 := &Env{Budget: newBudget(t, tup)}
	got1, err := p.Materialize(env1)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	env2 := &Env{Budget: newBudget(t, tup)}
	got2, err := p.Materialize(env2)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if got1 != got2 {
		t.Fatalf("not deterministic: %q != %q", got1, got2)
	}
	if len([]rune(got1)) != 12 {
		t.Fatalf("len = %d, want 12", len([]rune(got1)))
	}
}

func TestPasswordPrefixSuffixSep(t *testing.T) {
	tup := seed.Tuple{MasterSeed: "m", AccountSeed: "acct", FieldName: "password"}
	p := Password{Alphabet: "abc", Length: 3, Prefix: "<", Suffix: ">", Sep: "-"}
	env := &Env{Budget: newBudget(t, tup)}
	got, err := p.Materialize(env)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if got[0] != '<' || got[len(got)-1] != '>' {
		t.Fatalf("got %q, want prefix/suffix wrapping", got)
	}
}

func TestShiftSortGroupsShiftedAtEnd(t *testing.T) {
	out := shiftSort([]rune("aB1!cD"))
	// unshifted run preserved order: a,1,c ; shifted run preserved order: B,!,D
	want := "a1cB!D"
	if string(out) != want {
		t.Fatalf("shiftSort = %q, want %q", string(out), want)
	}
}

func TestPasswordExhaustsBudgetOnLargeLength(t *testing.T) {
	tup := seed.Tuple{MasterSeed: "m", AccountSeed: "acct", FieldName: "password"}
	// DISTINGUISHABLE alphabet needs ~6 bits/symbol; 512/6 ~= 85 symbols max.
	p := Password{Length: 200}
	env := &Env{Budget: newBudget(t, tup)}
	_, err := p.Materialize(env)
	if err == nil {
		t.Fatalf("expected SecretExhausted, got nil")
	}
	if !apperr.Is(err, apperr.SecretExhausted) {
		t.Fatalf("got err %v, want secret_exhausted", err)
	}
}
