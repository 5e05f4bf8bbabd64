// Package aesgcm implements authenticated AES-GCM encryption over the
// standard library's cipher.AEAD, with a caller-selectable tag length.
package aesgcm

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"go.bryk.io/kms/errors"
)

// Params bundles an AES-GCM operation's inputs. TagLength is in bytes.
type Params struct {
	IV             []byte
	Key            []byte
	Data           []byte
	TagLength      int
	AdditionalData []byte
}

func newAEAD(key []byte, tagLength int) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "Operation failed: aesgcm")
	}
	if tagLength <= 0 {
		return cipher.NewGCM(block)
	}
	return cipher.NewGCMWithTagSize(block, tagLength)
}

// Encrypt returns ciphertext with the authentication tag appended.
func Encrypt(p Params) ([]byte, error) {
	aead, err := newAEAD(p.Key, p.TagLength)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, p.IV, p.Data, p.AdditionalData), nil
}

// Decrypt verifies the trailing authentication tag and returns the
// plaintext, failing with "Wrong tag" on a mismatch.
func Decrypt(p Params) ([]byte, error) {
	aead, err := newAEAD(p.Key, p.TagLength)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, p.IV, p.Data, p.AdditionalData)
	if err != nil {
		return nil, errors.Operation("Wrong tag")
	}
	return plaintext, nil
}

// GenerateKey returns a random AES key of the given length in bits
// (128, 192 or 256).
func GenerateKey(length int) ([]byte, error) {
	switch length {
	case 128, 192, 256:
	default:
		return nil, errors.NotSupportedf("Algorithm not supported: AES-GCM %d", length)
	}
	key := make([]byte, length/8)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(err, "failed to generate key")
	}
	return key, nil
}
