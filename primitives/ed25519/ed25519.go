// Package ed25519 wraps golang.org/x/crypto/ed25519 as a set of pure
// functions over byte slices: memguard-staged key generation, sign/verify,
// and Edwards<->Montgomery conversion via the birational map for X25519
// interop.
package ed25519

import (
	"crypto/rand"
	"crypto/sha512"
	"math/big"

	"github.com/awnumar/memguard"
	e "golang.org/x/crypto/ed25519"

	"go.bryk.io/kms/errors"
)

// GenerateKey returns a fresh random 32-byte Ed25519 private key (seed
// form). The random seed is staged through a memguard-locked buffer before
// use, so the scratch copy never lingers unwiped.
func GenerateKey() ([]byte, error) {
	raw := make([]byte, e.SeedSize)
	if _, err := rand.Read(raw); err != nil {
		return nil, errors.Wrap(err, "failed to generate new random key")
	}
	buf := memguard.NewBufferFromBytes(raw)
	defer buf.Destroy()
	return append([]byte{}, buf.Bytes()...), nil
}

// GetPublicKey derives the 32-byte public key for a 32-byte seed-form
// private key.
func GetPublicKey(privateKey []byte) ([]byte, error) {
	if len(privateKey) != e.SeedSize {
		return nil, errors.TypeErrf("'privateKey' must be %d bytes", e.SeedSize)
	}
	full := e.NewKeyFromSeed(privateKey)
	pub := make([]byte, e.PublicKeySize)
	copy(pub, full[e.SeedSize:])
	return pub, nil
}

// Sign produces a 64-byte signature of data using the 32-byte seed-form
// private key.
func Sign(key, data []byte) ([]byte, error) {
	if len(key) != e.SeedSize {
		return nil, errors.TypeErrf("'key' must be %d bytes", e.SeedSize)
	}
	full := e.NewKeyFromSeed(key)
	return e.Sign(full, data), nil
}

// Verify checks a 64-byte signature of data against a 32-byte public key.
func Verify(key, signature, data []byte) bool {
	if len(signature) != e.SignatureSize {
		return false
	}
	if len(key) != e.PublicKeySize {
		return false
	}
	return e.Verify(key, data, signature)
}

// ValidatePublicKey reports whether key decodes to a valid Ed25519 point.
// It returns false for a wrong length and for malformed points. A 32-byte
// private seed is not detected as such: it is accepted whenever its bytes
// happen to decode as a point.
func ValidatePublicKey(key []byte) bool {
	if len(key) != e.PublicKeySize {
		return false
	}
	_, ok := decompress(key)
	return ok
}

// ConvertPrivateKeyToX25519 hashes and clamps arbitrary key material into a
// 32-byte X25519 scalar using the standard SHA-512-derived-seed
// construction.
func ConvertPrivateKeyToX25519(privateKey []byte) []byte {
	digest := sha512.Sum512(privateKey)
	scalar := make([]byte, 32)
	copy(scalar, digest[:32])
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64
	memguard.WipeBytes(digest[:])
	return scalar
}

// cp is the field prime 2^255 - 19, used for the Edwards->Montgomery map.
var cp, _ = new(big.Int).SetString(
	"57896044618658097711785492504343953926634992332820282019728792003956564819949", 10)

// ConvertPublicKeyToX25519 performs the Edwards->Montgomery birational map
// u = (1+y)/(1-y) on an Ed25519 public key, failing "Invalid public key"
// when the input is not a valid Edwards point.
func ConvertPublicKeyToX25519(publicKey []byte) ([]byte, error) {
	if len(publicKey) != e.PublicKeySize {
		return nil, errors.TypeErr("Invalid public key")
	}
	if _, ok := decompress(publicKey); !ok {
		return nil, errors.Operation("Invalid public key")
	}

	bigEndianY := make([]byte, e.PublicKeySize)
	for i, b := range publicKey {
		bigEndianY[e.PublicKeySize-i-1] = b
	}
	bigEndianY[0] &= 0b0111_1111

	y := new(big.Int).SetBytes(bigEndianY)
	one := big.NewInt(1)
	denom := new(big.Int).Sub(one, y)
	denom.Mod(denom, cp)
	if denom.Sign() == 0 {
		return nil, errors.Operation("Invalid public key")
	}
	denom.ModInverse(denom, cp)
	u := new(big.Int).Add(y, one)
	u.Mul(u, denom)
	u.Mod(u, cp)

	out := make([]byte, 32)
	uBytes := u.Bytes()
	for i, b := range uBytes {
		out[len(uBytes)-i-1] = b
	}
	return out, nil
}

// decompress reports whether key decodes to a point on the curve: the
// y-coordinate must be strictly less than the field prime once the sign bit
// is masked off, and the x^2 it implies must have a square root.
func decompress(key []byte) ([]byte, bool) {
	bigEndianY := make([]byte, e.PublicKeySize)
	for i, b := range key {
		bigEndianY[e.PublicKeySize-i-1] = b
	}
	bigEndianY[0] &= 0b0111_1111
	y := new(big.Int).SetBytes(bigEndianY)
	if y.Cmp(cp) >= 0 {
		return nil, false
	}
	// On the curve iff x^2 = (y^2-1)/(d*y^2+1), d = -121665/121666, is a square.
	d := new(big.Int).ModInverse(big.NewInt(121666), cp)
	d.Mul(d, big.NewInt(-121665))
	y2 := new(big.Int).Mul(y, y)
	u := new(big.Int).Sub(y2, big.NewInt(1))
	v := new(big.Int).Mul(d, y2)
	v.Add(v, big.NewInt(1)).Mod(v, cp)
	x2 := u.Mul(u, v.ModInverse(v, cp))
	x2.Mod(x2, cp)
	if x2.Sign() == 0 {
		return key, key[31]&0x80 == 0
	}
	return key, new(big.Int).ModSqrt(x2, cp) != nil
}
