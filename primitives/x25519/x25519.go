// Package x25519 wraps golang.org/x/crypto/curve25519 as pure functions:
// clamped key generation and Diffie-Hellman key agreement, shaped as the
// free functions this module's provider layer expects.
package x25519

import (
	"crypto/rand"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/curve25519"

	"go.bryk.io/kms/errors"
)

// GenerateKey returns a fresh random, correctly-clamped 32-byte X25519
// private scalar.
func GenerateKey() ([]byte, error) {
	raw := make([]byte, curve25519.ScalarSize)
	if _, err := rand.Read(raw); err != nil {
		return nil, errors.Wrap(err, "failed to generate random seed")
	}
	buf := memguard.NewBufferFromBytes(raw)
	defer buf.Destroy()

	priv := append([]byte{}, buf.Bytes()...)
	priv[0] &= 248
	priv[31] &= 127
	priv[31] |= 64
	return priv, nil
}

// GetPublicKey derives the public key for a 32-byte private scalar via
// scalar multiplication against the curve basepoint.
func GetPublicKey(privateKey []byte) ([]byte, error) {
	if len(privateKey) != curve25519.ScalarSize {
		return nil, errors.TypeErrf("'privateKey' must be %d bytes", curve25519.ScalarSize)
	}
	pub, err := curve25519.X25519(privateKey, curve25519.Basepoint)
	if err != nil {
		return nil, errors.Wrap(err, "Operation failed: getPublicKey")
	}
	return pub, nil
}

// SharedSecret computes the Diffie-Hellman shared secret between a private
// scalar and a peer's public key.
func SharedSecret(privateKey, publicKey []byte) ([]byte, error) {
	if len(privateKey) != curve25519.ScalarSize {
		return nil, errors.TypeErrf("'privateKey' must be %d bytes", curve25519.ScalarSize)
	}
	if len(publicKey) != curve25519.ScalarSize {
		return nil, errors.TypeErrf("'publicKey' must be %d bytes", curve25519.ScalarSize)
	}
	secret, err := curve25519.X25519(privateKey, publicKey)
	if err != nil {
		return nil, errors.Wrap(err, "Operation failed: sharedSecret")
	}
	return secret, nil
}

// ValidatePublicKey is unimplemented: curve25519 has no low-order-point or
// small-subgroup validation surface exposed by the standard library, and no
// other example in this module's pack supplies one either.
func ValidatePublicKey([]byte) (bool, error) {
	return false, errors.NotSupportedf("Not implemented")
}
