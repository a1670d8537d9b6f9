package generator

import (
	"testing"

	"github.com/passforge/passforge/core/apperr"
	"github.com/passforge/passforge/core/seed"
)

func TestBuildDispatchesByKind(t *testing.T) {
	tup := seed.Tuple{MasterSeed: "m", AccountSeed: "acct", FieldName: "f"}
	cases := []Spec{
		{Kind: KindPassword, Length: 8},
		{Kind: KindPassphrase, Length: 2},
		{Kind: KindPIN, Length: 4},
		{Kind: KindQuestion, Answer: "fixed"},
		{Kind: KindMixedPassword, Groups: []AlphabetCount{{Alphabet: "ab", Count: 1}}, Length: 3},
		{Kind: KindPasswordRecipe, Recipe: "8 1u 1d"},
		{Kind: KindBirthDate, Year: 2026, MinAge: 18, MaxAge: 80},
		{Kind: KindOTP, Secret: "JBSWY3DPEHPK3PXP", IntervalSeconds: 30, NumDigits: 6},
	}
	for _, s := range cases {
		g, err := Build(s)
		if err != nil {
			t.Fatalf("Build(%v): %v", s.Kind, err)
		}
		if g.Kind() != s.Kind {
			t.Fatalf("Build(%v).Kind() = %v", s.Kind, g.Kind())
		}
		env := &Env{Budget: newBudget(t, tup)}
		if _, err := g.Materialize(env); err != nil {
			t.Fatalf("Materialize(%v): %v", s.Kind, err)
		}
	}
}

func TestBuildRejectsUnknownKind(t *testing.T) {
	_, err := Build(Spec{Kind: Kind("bogus")})
	if !apperr.Is(err, apperr.BadRecipe) {
		t.Fatalf("got %v, want bad_recipe", err)
	}
}
