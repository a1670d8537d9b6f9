package obscure

// Hide is the identity obscurer: it carries its plaintext unencoded, but
// flags whether the field is sensitive (Secure), per spec §4.3's
// "Hide(text, secure=true)".
type Hide struct {
	Plaintext string
	Secure    bool
}

func (h Hide) Kind() Kind { return KindHide }

func (h Hide) IsSecret() bool { return h.Secure }

func (h Hide) Open(*Env) (string, error) { return h.Plaintext, nil }
