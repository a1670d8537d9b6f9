// Package envelope adapts github.com/ProtonMail/go-crypto/openpgp to the
// obscure.Envelope interface, decrypting the ".gpg"/".asc" account files and
// GPG-obscured field values spec §4.3/§4.6 describe. It supports both
// public-key decryption (against a Keyring of trusted private keys) and
// passphrase-based symmetric decryption, trying the keyring first and
// falling back to a passphrase prompt — openpgp.ReadMessage's own fallback
// order when given both a non-nil KeyRing and a PromptFunction.
package envelope

import (
	"bytes"
	"io"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"

	"github.com/passforge/passforge/core/apperr"
)

// Adapter implements obscure.Envelope over a trusted Keyring.
type Adapter struct {
	Keyring *Keyring
}

// New builds an Adapter over kr. A nil Keyring is valid: decryption then
// relies entirely on the passphrase prompt (pure symmetric messages).
func New(kr *Keyring) *Adapter {
	if kr == nil {
		kr = NewKeyring()
	}
	return &Adapter{Keyring: kr}
}

// Decrypt opens an ASCII-armored OpenPGP message and returns its plaintext.
// prompt is invoked (possibly more than once, for repeated passphrase
// attempts) only if the message requires a passphrase — public-key-only
// messages the keyring can already open never call it.
func (a *Adapter) Decrypt(ciphertext string, prompt func(string) (string, error)) (string, error) {
	block, err := armor.Decode(strings.NewReader(ciphertext))
	if err != nil {
		return "", apperr.Wrap(apperr.DecryptionFailed, "", err, "envelope: invalid armored message")
	}

	entities, err := a.Keyring.EntityList()
	if err != nil {
		return "", apperr.Wrap(apperr.DecryptionFailed, "", err, "envelope: loading keyring")
	}

	promptFn := openpgp.PromptFunction(func(keys []openpgp.Key, symmetric bool) ([]byte, error) {
		if prompt == nil {
			return nil, apperr.New(apperr.UserKeyMissing, "", "envelope: passphrase required but no prompt configured")
		}
		passphrase, err := prompt("Enter passphrase to decrypt account file: ")
		if err != nil {
			return nil, err
		}
		if !symmetric {
			for _, k := range keys {
				if k.PrivateKey != nil && k.PrivateKey.Encrypted {
					if err := k.PrivateKey.Decrypt([]byte(passphrase)); err != nil {
						continue
					}
				}
			}
		}
		return []byte(passphrase), nil
	})

	md, err := openpgp.ReadMessage(block.Body, entities, promptFn, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.DecryptionFailed, "", err, "envelope: reading encrypted message")
	}
	plaintext, err := io.ReadAll(md.UnverifiedBody)
	if err != nil {
		return "", apperr.Wrap(apperr.DecryptionFailed, "", err, "envelope: reading decrypted body")
	}
	return string(plaintext), nil
}

// EncryptSymmetric armors plaintext under a passphrase, the
// symmetric_encrypt half of spec §4.9's envelope adapter contract.
func (a *Adapter) EncryptSymmetric(plaintext, passphrase string) (string, error) {
	var buf bytes.Buffer
	armorWriter, err := armor.Encode(&buf, "PGP MESSAGE", nil)
	if err != nil {
		return "", apperr.Wrap(apperr.EncryptionFailed, "", err, "envelope: opening armor writer")
	}
	w, err := openpgp.SymmetricallyEncrypt(armorWriter, []byte(passphrase), nil, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.EncryptionFailed, "", err, "envelope: opening symmetric writer")
	}
	if _, err := io.WriteString(w, plaintext); err != nil {
		return "", apperr.Wrap(apperr.EncryptionFailed, "", err, "envelope: writing plaintext")
	}
	if err := w.Close(); err != nil {
		return "", apperr.Wrap(apperr.EncryptionFailed, "", err, "envelope: closing symmetric writer")
	}
	if err := armorWriter.Close(); err != nil {
		return "", apperr.Wrap(apperr.EncryptionFailed, "", err, "envelope: closing armor writer")
	}
	return buf.String(), nil
}

// EncryptToRecipients armors plaintext to every keyring entry named in
// fingerprints, the public-key encrypt half of spec §4.9's envelope adapter
// contract (the `gpg_ids` setting names recipients this way).
func (a *Adapter) EncryptToRecipients(plaintext string, fingerprints []string) (string, error) {
	var recipients openpgp.EntityList
	for _, fp := range fingerprints {
		entry := a.Keyring.Find(fp)
		if entry == nil {
			return "", apperr.New(apperr.UserKeyMissing, fp, "envelope: no keyring entry for recipient %q", fp)
		}
		entities, err := openpgp.ReadArmoredKeyRing(strings.NewReader(entry.ArmoredKey))
		if err != nil {
			return "", apperr.Wrap(apperr.EncryptionFailed, fp, err, "envelope: parsing recipient key %q", fp)
		}
		recipients = append(recipients, entities...)
	}
	if len(recipients) == 0 {
		return "", apperr.New(apperr.UserKeyMissing, "", "envelope: no recipients resolved")
	}

	var buf bytes.Buffer
	armorWriter, err := armor.Encode(&buf, "PGP MESSAGE", nil)
	if err != nil {
		return "", apperr.Wrap(apperr.EncryptionFailed, "", err, "envelope: opening armor writer")
	}
	w, err := openpgp.Encrypt(armorWriter, recipients, nil, nil, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.EncryptionFailed, "", err, "envelope: opening encrypt writer")
	}
	if _, err := io.WriteString(w, plaintext); err != nil {
		return "", apperr.Wrap(apperr.EncryptionFailed, "", err, "envelope: writing plaintext")
	}
	if err := w.Close(); err != nil {
		return "", apperr.Wrap(apperr.EncryptionFailed, "", err, "envelope: closing encrypt writer")
	}
	if err := armorWriter.Close(); err != nil {
		return "", apperr.Wrap(apperr.EncryptionFailed, "", err, "envelope: closing armor writer")
	}
	return buf.String(), nil
}
