// Package xchacha20poly1305 implements the authenticated XChaCha20-Poly1305
// AEAD construction over golang.org/x/crypto/chacha20poly1305's extended-
// nonce variant, returning ciphertext and tag detached.
package xchacha20poly1305

import (
	"golang.org/x/crypto/chacha20poly1305"

	"go.bryk.io/kms/errors"
)

const tagSize = chacha20poly1305.Overhead

// Params bundles an XChaCha20-Poly1305 operation's inputs.
type Params struct {
	Nonce          []byte
	Key            []byte
	Data           []byte
	AdditionalData []byte
}

// Result is the output of a successful Encrypt call: ciphertext and its
// detached 16-byte authentication tag.
type Result struct {
	Ciphertext []byte
	Tag        []byte
}

func newAEAD(key []byte) (interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
}, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, errors.Wrap(err, "Operation failed: xchacha20poly1305")
	}
	return aead, nil
}

// Encrypt seals data, returning the ciphertext and its authentication tag
// separately. The tag deterministically depends on additionalData.
func Encrypt(p Params) (Result, error) {
	aead, err := newAEAD(p.Key)
	if err != nil {
		return Result{}, err
	}
	sealed := aead.Seal(nil, p.Nonce, p.Data, p.AdditionalData)
	ctLen := len(sealed) - tagSize
	return Result{
		Ciphertext: sealed[:ctLen],
		Tag:        sealed[ctLen:],
	}, nil
}

// DecryptParams bundles an XChaCha20-Poly1305 decrypt operation's inputs,
// the tag carried separately from the ciphertext.
type DecryptParams struct {
	Nonce          []byte
	Key            []byte
	Data           []byte
	Tag            []byte
	AdditionalData []byte
}

// Decrypt verifies Tag against Data and returns the plaintext, failing
// with "Wrong tag" on a mismatch.
func Decrypt(p DecryptParams) ([]byte, error) {
	aead, err := newAEAD(p.Key)
	if err != nil {
		return nil, err
	}
	sealed := append(append([]byte{}, p.Data...), p.Tag...)
	plaintext, err := aead.Open(nil, p.Nonce, sealed, p.AdditionalData)
	if err != nil {
		return nil, errors.Operation("Wrong tag")
	}
	return plaintext, nil
}
