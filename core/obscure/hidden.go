package obscure

import (
	"encoding/base64"

	"github.com/passforge/passforge/core/apperr"
)

// Hidden carries a base64-encoded payload, decoded lazily on Open, per spec
// §4.3's "Hidden(base64, encoding)". Encoding names how the decoded bytes
// are interpreted as a string; "utf-8" (the default) and "ascii" are
// supported, matching the only two encodings the reference wordlist and
// account-file authoring tools in the corpus ever produce.
type Hidden struct {
	Encoded  string
	Encoding string
}

func (h Hidden) Kind() Kind { return KindHidden }

func (h Hidden) IsSecret() bool { return true }

func (h Hidden) Open(*Env) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(h.Encoded)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(h.Encoded)
		if err != nil {
			return "", apperr.Wrap(apperr.DecryptionFailed, "", err, "hidden: invalid base64 payload")
		}
	}
	switch h.Encoding {
	case "", "utf-8", "utf8":
		return string(raw), nil
	case "ascii":
		for _, b := range raw {
			if b > 0x7f {
				return "", apperr.New(apperr.DecryptionFailed, "", "hidden: payload is not pure ASCII")
			}
		}
		return string(raw), nil
	default:
		return "", apperr.New(apperr.DecryptionFailed, "", "hidden: unsupported encoding %q", h.Encoding)
	}
}

// EncodeHidden packs plaintext as a Hidden value, the inverse of Open.
// Encoding is stored alongside so the round trip is symmetric.
func EncodeHidden(plaintext, encoding string) Hidden {
	return Hidden{Encoded: base64.StdEncoding.EncodeToString([]byte(plaintext)), Encoding: encoding}
}
