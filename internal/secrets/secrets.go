// Package secrets encrypts credentials at rest using fernet tokens.
// The remote-backend DSN is stored through this package so a copied local
// database file does not leak the PostgreSQL credential.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Encryptor encrypts and decrypts short secrets with a single fernet key.
type Encryptor struct {
	key *fernet.Key
}

// NewEncryptor parses a base64url-encoded 32-byte fernet key.
func NewEncryptor(encodedKey string) (*Encryptor, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}
	return &Encryptor{key: key}, nil
}

// Encrypt returns the fernet token for plaintext.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), e.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Tokens do not expire;
// credential rotation happens by overwriting the stored setting.
func (e *Encryptor) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{e.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt secret: invalid token or key")
	}
	return string(plaintext), nil
}
