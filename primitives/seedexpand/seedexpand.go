// Package seedexpand derives fixed-length, algorithm-scoped key material
// from a caller-supplied seed via HKDF-SHA256 (an Extract step with an
// empty salt, followed by Expand).
package seedexpand

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"go.bryk.io/kms/errors"
)

// Expand derives length bytes of key material from seed, domain-separated
// by info (typically the target algorithm's canonical name plus curve, so
// "ES256K" and "EdDSA" never collide even when given the same seed).
func Expand(seed []byte, info string, length int) ([]byte, error) {
	if len(seed) == 0 {
		return nil, errors.TypeErr("Required parameter was missing: 'seed'")
	}
	if length <= 0 {
		return nil, errors.TypeErr("Out of range: 'length' must be positive")
	}
	r := hkdf.New(sha256.New, seed, nil, []byte(info))
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, errors.Wrap(err, "failed to expand seed")
	}
	return out, nil
}
