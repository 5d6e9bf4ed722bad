package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
)

const (
	EnvSecret = "COTYLEDON_SECRET"

	generatedSecretLen = 24
	secretAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var ErrMissingSecret = errors.New("auth: secret is empty")

// Secret is the opaque server signing key. It never prints its value.
type Secret struct {
	value []byte
}

func NewSecret(raw string) (Secret, error) {
	if raw == "" {
		return Secret{}, ErrMissingSecret
	}
	return Secret{value: []byte(raw)}, nil
}

// Bytes returns a copy of the key material.
func (s Secret) Bytes() []byte {
	out := make([]byte, len(s.value))
	copy(out, s.value)
	return out
}

func (s Secret) IsZero() bool {
	return len(s.value) == 0
}

func (s Secret) String() string {
	return "[redacted]"
}

func (s Secret) GoString() string {
	return "auth.Secret{[redacted]}"
}

// GenerateSecret returns a random 24-character alphanumeric secret.
func GenerateSecret() (string, error) {
	limit := big.NewInt(int64(len(secretAlphabet)))
	buf := make([]byte, generatedSecretLen)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("auth: generate secret: %w", err)
		}
		buf[i] = secretAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadSecret reads EnvSecret through lookup. When the variable is unset a
// temporary secret is generated and generated is true; gardens signed with it
// stop verifying once the process exits. A variable that is set but empty is
// an error.
func LoadSecret(lookup LookupFunc) (secret Secret, raw string, generated bool, err error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	value, ok := lookup(EnvSecret)
	if !ok {
		value, err = GenerateSecret()
		if err != nil {
			return Secret{}, "", false, err
		}
		generated = true
	}
	secret, err = NewSecret(value)
	if err != nil {
		return Secret{}, "", false, fmt.Errorf("%s is set but %w", EnvSecret, err)
	}
	return secret, value, generated, nil
}
