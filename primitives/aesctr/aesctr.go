// Package aesctr implements AES in counter mode with a WebCrypto-shaped
// {counter, length} nonce split: only the rightmost 'length' bits of the
// 16-byte counter block advance as the stream progresses, the remaining
// high-order bits are a fixed nonce, built directly on cipher.Block.
package aesctr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"math/big"

	"go.bryk.io/kms/errors"
)

const counterSize = 16

// Params bundles an AES-CTR operation's inputs. Counter is a 16-byte
// initial counter block; Length is the number of rightmost bits of that
// block that increment as the stream advances (the remaining high bits are
// the nonce).
type Params struct {
	Counter []byte
	Length  int
	Key     []byte
	Data    []byte
}

func validate(p Params) error {
	if len(p.Counter) != counterSize {
		return errors.Operationf("'counter' must be %d bytes", counterSize)
	}
	if p.Length < 1 || p.Length > 128 {
		return errors.TypeErr("Out of range: 'length' must be between 1 and 128")
	}
	return nil
}

// keystream fills out with numBlocks AES keystream blocks, with the block
// counter wrapping within the low 'length' bits of the 16-byte block and
// the remaining high-order bits held fixed as the nonce. cipher.NewCTR
// can't be used here: it always increments the full 128-bit block, which
// only matches WebCrypto's {counter, length} split when length == 128.
func keystream(block cipher.Block, counter []byte, length, numBlocks int) []byte {
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(length))
	full := new(big.Int).SetBytes(counter)
	nonce := new(big.Int).AndNot(full, new(big.Int).Sub(modulus, big.NewInt(1)))
	low := new(big.Int).And(full, new(big.Int).Sub(modulus, big.NewInt(1)))

	out := make([]byte, numBlocks*counterSize)
	blockBuf := make([]byte, counterSize)
	for i := 0; i < numBlocks; i++ {
		value := new(big.Int).Or(nonce, low)
		value.FillBytes(blockBuf)
		block.Encrypt(out[i*counterSize:(i+1)*counterSize], blockBuf)

		low.Add(low, big.NewInt(1))
		low.Mod(low, modulus)
	}
	return out
}

// Encrypt produces ciphertext of the same length as data.
func Encrypt(p Params) ([]byte, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(p.Key)
	if err != nil {
		return nil, errors.Wrap(err, "Operation failed: encrypt")
	}

	numBlocks := (len(p.Data) + counterSize - 1) / counterSize
	ks := keystream(block, p.Counter, p.Length, numBlocks)

	out := make([]byte, len(p.Data))
	for i := range out {
		out[i] = p.Data[i] ^ ks[i]
	}
	return out, nil
}

// Decrypt is symmetric with Encrypt: CTR mode XORs the same keystream
// regardless of direction.
func Decrypt(p Params) ([]byte, error) {
	return Encrypt(p)
}

// GenerateKey returns a random AES key of the given length in bits
// (128, 192 or 256).
func GenerateKey(length int) ([]byte, error) {
	switch length {
	case 128, 192, 256:
	default:
		return nil, errors.NotSupportedf("Algorithm not supported: AES-CTR %d", length)
	}
	key := make([]byte, length/8)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(err, "failed to generate key")
	}
	return key, nil
}
