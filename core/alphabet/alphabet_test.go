package alphabet

import "testing"

func TestWordlistSize(t *testing.T) {
	wl := Wordlist()
	if len(wl) != 10000 {
		t.Fatalf("len(Wordlist()) = %d, want 10000", len(wl))
	}
	seen := make(map[string]bool, len(wl))
	for _, w := range wl {
		if seen[w] {
			t.Fatalf("duplicate word %q in wordlist", w)
		}
		seen[w] = true
	}
}

func TestNamedAlphabets(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"digit", digitChars},
		{"upper", upperChars},
		{"lower", lowerChars},
		{"letter", upperChars + lowerChars},
		{"nopunct", upperChars + lowerChars + digitChars},
		{"all", upperChars + lowerChars + digitChars + punctChars},
		{"chars:xyz", "xyz"},
	}
	for _, c := range cases {
		got, ok := Named(c.name)
		if !ok || got != c.want {
			t.Errorf("Named(%q) = (%q, %v), want (%q, true)", c.name, got, ok, c.want)
		}
	}
	if _, ok := Named("nonsense"); ok {
		t.Errorf("Named(%q) unexpectedly matched", "nonsense")
	}
}

func TestComposeIsOrderSensitive(t *testing.T) {
	a, ok := Compose([]string{"digit", "chars:x"})
	if !ok || a != digitChars+"x" {
		t.Fatalf("Compose(digit, chars:x) = %q, want %q", a, digitChars+"x")
	}
	b, ok := Compose([]string{"chars:x", "digit"})
	if !ok || b != "x"+digitChars {
		t.Fatalf("Compose(chars:x, digit) = %q, want %q", b, "x"+digitChars)
	}
}

func TestShiftedClass(t *testing.T) {
	if !DefaultShiftedClass('A') {
		t.Errorf("expected uppercase to be shifted")
	}
	if !DefaultShiftedClass('!') {
		t.Errorf("expected punctuation to be shifted")
	}
	if DefaultShiftedClass('a') {
		t.Errorf("expected lowercase to not be shifted")
	}
}
