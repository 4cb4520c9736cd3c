// Package cryptox seals small local secrets (the persisted session) so the
// client database never holds refresh tokens in clear text.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/adearn/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	KeySize        = 32
	deviceSecretSz = 32
)

var ErrSealedTooShort = errors.New("sealed payload too short")

// DeriveKey stretches the device secret into an AES-256 key.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

// LoadOrCreateDeviceSecret reads the per-device secret from path, creating it
// with 0600 permissions on first use.
func LoadOrCreateDeviceSecret(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil && len(b) == deviceSecretSz {
		return b, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read device secret: %w", err)
	}

	secret := common.GenerateRandByteArray(deviceSecretSz)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create secret dir: %w", err)
	}
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("write device secret: %w", err)
	}
	return secret, nil
}

// Seal serializes v to JSON and encrypts it with AES-GCM. The random nonce is
// prepended to the ciphertext.
func Seal(v any, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aead.NonceSize())
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal and unmarshals the plaintext into v.
func Open(sealed []byte, key []byte, v any) error {
	aead, err := newGCM(key)
	if err != nil {
		return err
	}
	if len(sealed) < aead.NonceSize() {
		return ErrSealedTooShort
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(plaintext)

	return json.Unmarshal(plaintext, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
