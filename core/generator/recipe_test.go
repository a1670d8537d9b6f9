package generator

import (
	"testing"

	"github.com/passforge/passforge/core/alphabet"
	"github.com/passforge/passforge/core/apperr"
	"github.com/passforge/passforge/core/seed"
)

func TestPasswordRecipeSatisfiesClassCounts(t *testing.T) {
	tup := seed.Tuple{MasterSeed: "m", AccountSeed: "mt", FieldName: "passcode"}
	p := PasswordRecipe{Recipe: "12 2u 2d 2s"}
	got, err := p.Materialize(&Env{Budget: newBudget(t, tup)})
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len([]rune(got)) != 12 {
		t.Fatalf("len = %d, want 12", len([]rune(got)))
	}
	var upper, digit, sym int
	for _, r := range got {
		switch {
		case alphabet.IsUpper(r):
			upper++
		case alphabet.IsDigit(r):
			digit++
		case alphabet.IsPunct(r):
			sym++
		}
	}
	if upper < 2 || digit < 2 || sym < 2 {
		t.Fatalf("got upper=%d digit=%d sym=%d in %q, want >=2 each", upper, digit, sym, got)
	}
}

func TestPasswordRecipeDeterministic(t *testing.T) {
	tup := seed.Tuple{MasterSeed: "m", AccountSeed: "mt", FieldName: "passcode"}
	p := PasswordRecipe{Recipe: "12 2u 2d 2s"}
	got1, err := p.Materialize(&Env{Budget: newBudget(t, tup)})
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	got2, err := p.Materialize(&Env{Budget: newBudget(t, tup)})
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if got1 != got2 {
		t.Fatalf("not deterministic: %q != %q", got1, got2)
	}
}

func TestPasswordRecipeLiteralClass(t *testing.T) {
	tup := seed.Tuple{MasterSeed: "m", AccountSeed: "acct", FieldName: "passcode"}
	p := PasswordRecipe{Recipe: "6 2cXY"}
	got, err := p.Materialize(&Env{Budget: newBudget(t, tup)})
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	count := 0
	for _, r := range got {
		if r == 'X' || r == 'Y' {
			count++
		}
	}
	if count < 2 {
		t.Fatalf("got %d of X/Y in %q, want >= 2", count, got)
	}
}

func TestPasswordRecipeRejectsOverRequiredCounts(t *testing.T) {
	tup := seed.Tuple{MasterSeed: "m", AccountSeed: "acct", FieldName: "passcode"}
	p := PasswordRecipe{Recipe: "4 3u 3d"}
	_, err := p.Materialize(&Env{Budget: newBudget(t, tup)})
	if !apperr.Is(err, apperr.BadRecipe) {
		t.Fatalf("got %v, want bad_recipe", err)
	}
}

func TestPasswordRecipeRejectsMalformedRecipe(t *testing.T) {
	tup := seed.Tuple{MasterSeed: "m", AccountSeed: "acct", FieldName: "passcode"}
	p := PasswordRecipe{Recipe: "not-a-recipe"}
	_, err := p.Materialize(&Env{Budget: newBudget(t, tup)})
	if !apperr.Is(err, apperr.BadRecipe) {
		t.Fatalf("got %v, want bad_recipe", err)
	}
}
