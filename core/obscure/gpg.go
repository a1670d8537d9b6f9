package obscure

import "github.com/passforge/passforge/core/apperr"

// GPG carries an OpenPGP-encrypted payload, decrypted via the Envelope
// adapter (core/envelope, grounded on github.com/ProtonMail/go-crypto/
// openpgp) on Open. Per spec §4.3, the decrypted plaintext may itself parse
// as another field value variant ("nested"); GPG.Open always returns the
// raw decrypted text, and core/account.Evaluate's Obscured case re-parses
// it via account.ParseNested and re-evaluates the result, since only
// core/account knows the account-file grammar.
type GPG struct {
	Ciphertext string
}

func (g GPG) Kind() Kind { return KindGPG }

func (g GPG) IsSecret() bool { return true }

func (g GPG) Open(env *Env) (string, error) {
	if env == nil || env.GPG == nil {
		return "", apperr.New(apperr.UserKeyMissing, "", "gpg: no envelope adapter configured")
	}
	plaintext, err := env.GPG.Decrypt(g.Ciphertext, env.Prompt)
	if err != nil {
		return "", apperr.Wrap(apperr.DecryptionFailed, "", err, "gpg: decrypting payload")
	}
	return plaintext, nil
}
