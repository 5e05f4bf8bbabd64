// Package xchacha20 implements the unauthenticated XChaCha20 stream cipher
// over golang.org/x/crypto/chacha20's extended-nonce construction.
package xchacha20

import (
	"golang.org/x/crypto/chacha20"

	"go.bryk.io/kms/errors"
)

// Params bundles an XChaCha20 operation's inputs.
type Params struct {
	Nonce []byte
	Key   []byte
	Data  []byte
}

func newCipher(p Params) (*chacha20.Cipher, error) {
	if len(p.Nonce) != chacha20.NonceSizeX {
		return nil, errors.TypeErrf("'nonce' must be %d bytes", chacha20.NonceSizeX)
	}
	if len(p.Key) != chacha20.KeySize {
		return nil, errors.TypeErrf("'key' must be %d bytes", chacha20.KeySize)
	}
	c, err := chacha20.NewUnauthenticatedCipher(p.Key, p.Nonce)
	if err != nil {
		return nil, errors.Wrap(err, "Operation failed: xchacha20")
	}
	return c, nil
}

// Encrypt returns ciphertext the same length as data.
func Encrypt(p Params) ([]byte, error) {
	c, err := newCipher(p)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(p.Data))
	c.XORKeyStream(out, p.Data)
	return out, nil
}

// Decrypt is symmetric with Encrypt.
func Decrypt(p Params) ([]byte, error) {
	return Encrypt(p)
}
