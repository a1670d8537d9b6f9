package obscure

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/scrypt"

	"github.com/passforge/passforge/core/apperr"
)

// scrypt cost parameters. N=32768 is the value the golang.org/x/crypto/
// scrypt package's own doc comment recommends for interactive use as of
// 2017; r/p follow the same recommendation.
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 16
)

// Scrypt carries a payload encrypted with AES-256-GCM under a key derived by
// scrypt from a process-wide user-key file, per spec §4.3's
// "Scrypt(ciphertext)". Ciphertext packs salt || nonce || sealed-box as a
// single base64 string, so decryption needs only the user key plus the
// stored blob.
type Scrypt struct {
	Ciphertext string
}

func (s Scrypt) Kind() Kind { return KindScrypt }

func (s Scrypt) IsSecret() bool { return true }

func deriveScryptKey(userKey, salt []byte) ([]byte, error) {
	key, err := scrypt.Key(userKey, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, apperr.Wrap(apperr.DecryptionFailed, "", err, "scrypt: deriving key")
	}
	return key, nil
}

func (s Scrypt) Open(env *Env) (string, error) {
	if env == nil || env.UserKey == nil {
		return "", apperr.New(apperr.UserKeyMissing, "", "scrypt: no user key configured")
	}
	userKey, err := env.UserKey()
	if err != nil {
		return "", apperr.Wrap(apperr.UserKeyMissing, "", err, "scrypt: loading user key")
	}

	blob, err := base64.StdEncoding.DecodeString(s.Ciphertext)
	if err != nil {
		return "", apperr.Wrap(apperr.DecryptionFailed, "", err, "scrypt: invalid ciphertext envelope")
	}
	if len(blob) < saltLen {
		return "", apperr.New(apperr.DecryptionFailed, "", "scrypt: ciphertext too short")
	}
	salt, rest := blob[:saltLen], blob[saltLen:]

	key, err := deriveScryptKey(userKey, salt)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", apperr.Wrap(apperr.DecryptionFailed, "", err, "scrypt: building cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return "", apperr.Wrap(apperr.DecryptionFailed, "", err, "scrypt: building AEAD")
	}
	if len(rest) < aead.NonceSize() {
		return "", apperr.New(apperr.DecryptionFailed, "", "scrypt: ciphertext too short for nonce")
	}
	nonce, sealed := rest[:aead.NonceSize()], rest[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.DecryptionFailed, "", err, "scrypt: authentication failed")
	}
	return string(plaintext), nil
}

// EncryptScrypt seals plaintext under a fresh random salt and nonce, the
// inverse of Scrypt.Open. Each call produces a different Ciphertext string
// even for identical plaintext and userKey, since both salt and nonce are
// drawn fresh from crypto/rand.
func EncryptScrypt(plaintext string, userKey []byte) (Scrypt, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return Scrypt{}, apperr.Wrap(apperr.EncryptionFailed, "", err, "scrypt: generating salt")
	}
	key, err := deriveScryptKey(userKey, salt)
	if err != nil {
		return Scrypt{}, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return Scrypt{}, apperr.Wrap(apperr.EncryptionFailed, "", err, "scrypt: building cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return Scrypt{}, apperr.Wrap(apperr.EncryptionFailed, "", err, "scrypt: building AEAD")
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return Scrypt{}, apperr.Wrap(apperr.EncryptionFailed, "", err, "scrypt: generating nonce")
	}
	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)

	blob := make([]byte, 0, saltLen+len(nonce)+len(sealed))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, sealed...)
	return Scrypt{Ciphertext: base64.StdEncoding.EncodeToString(blob)}, nil
}
