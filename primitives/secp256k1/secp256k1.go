// Package secp256k1 wraps github.com/decred/dcrd/dcrec/secp256k1/v4 as pure
// functions over byte slices: key generation, compact sign/verify, point
// (de)compression, and compact ECDH key agreement.
package secp256k1

import (
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"go.bryk.io/kms/errors"
)

const (
	scalarSize     = 32
	compactSigSize = 65
)

// GenerateKey returns a fresh random 32-byte secp256k1 private key.
func GenerateKey() ([]byte, error) {
	key, err := secp.GeneratePrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate new random key")
	}
	defer key.Zero()
	return key.Serialize(), nil
}

// GetPublicKey derives the public key for a 32-byte private key, in
// compressed (33-byte) or uncompressed (65-byte) SEC1 form.
func GetPublicKey(privateKey []byte, compressedPublicKey bool) ([]byte, error) {
	if len(privateKey) != scalarSize {
		return nil, errors.TypeErrf("'privateKey' must be %d bytes", scalarSize)
	}
	priv := secp.PrivKeyFromBytes(privateKey)
	pub := priv.PubKey()
	if compressedPublicKey {
		return pub.SerializeCompressed(), nil
	}
	return pub.SerializeUncompressed(), nil
}

// ConvertPublicKey toggles a public key between its compressed and
// uncompressed SEC1 forms.
func ConvertPublicKey(publicKey []byte, compressedPublicKey bool) ([]byte, error) {
	pub, err := secp.ParsePubKey(publicKey)
	if err != nil {
		return nil, errors.TypeErrf("Point of length %d was invalid", len(publicKey))
	}
	if compressedPublicKey {
		return pub.SerializeCompressed(), nil
	}
	return pub.SerializeUncompressed(), nil
}

// Point is a pair of 32-byte, left-padded big-endian coordinates.
type Point struct {
	X []byte
	Y []byte
}

// GetCurvePoints returns the (x, y) affine coordinates for a key, which may
// be either a public key (any SEC1 form) or a private key (from which the
// public key is derived first).
func GetCurvePoints(key []byte) (Point, error) {
	var pub *secp.PublicKey
	switch len(key) {
	case scalarSize:
		pub = secp.PrivKeyFromBytes(key).PubKey()
	default:
		p, err := secp.ParsePubKey(key)
		if err != nil {
			return Point{}, errors.TypeErrf("Point of length %d was invalid", len(key))
		}
		pub = p
	}
	raw := pub.SerializeUncompressed()
	return Point{X: append([]byte{}, raw[1:33]...), Y: append([]byte{}, raw[33:65]...)}, nil
}

// SharedSecret computes a compact ECDH shared secret: the x-coordinate of
// privateKey * publicKey, left-padded to 32 bytes.
func SharedSecret(privateKey, publicKey []byte) ([]byte, error) {
	if len(privateKey) != scalarSize {
		return nil, errors.TypeErrf("'privateKey' must be %d bytes", scalarSize)
	}
	priv := secp.PrivKeyFromBytes(privateKey)
	pub, err := secp.ParsePubKey(publicKey)
	if err != nil {
		return nil, errors.TypeErrf("Point of length %d was invalid", len(publicKey))
	}

	var point, result secp.JacobianPoint
	pub.AsJacobian(&point)
	secp.ScalarMultNonConst(&priv.Key, &point, &result)
	result.ToAffine()

	x := result.X.Bytes()
	return x[:], nil
}

// Sign produces a 64-byte compact (r||s, low-S normalized) signature for
// data's hash. data is expected to already be the message digest (callers
// at the provider layer hash the original message before calling Sign).
func Sign(key, data []byte) ([]byte, error) {
	if len(key) != scalarSize {
		return nil, errors.TypeErrf("'key' must be %d bytes", scalarSize)
	}
	priv := secp.PrivKeyFromBytes(key)
	compact := ecdsa.SignCompact(priv, data, false)
	if len(compact) != compactSigSize {
		return nil, errors.Operation("Operation failed: sign")
	}
	// SignCompact prefixes the 64-byte (r||s) signature with a 1-byte
	// recovery header; this module's wire format carries only r||s.
	return compact[1:], nil
}

// Verify checks a 64-byte compact signature against data's hash and a
// public key in either SEC1 form.
func Verify(key, signature, data []byte) bool {
	if len(signature) != 64 {
		return false
	}
	pub, err := secp.ParsePubKey(key)
	if err != nil {
		return false
	}

	var r, s secp.ModNScalar
	if r.SetByteSlice(signature[:32]) {
		return false
	}
	if s.SetByteSlice(signature[32:]) {
		return false
	}
	sig := ecdsa.NewSignature(&r, &s)
	return sig.Verify(data, pub)
}

// ValidatePrivateKey reports whether key is a 32-byte scalar in the valid
// range [1, N-1] for the secp256k1 group order N.
func ValidatePrivateKey(key []byte) bool {
	if len(key) != scalarSize {
		return false
	}
	var scalar secp.ModNScalar
	overflow := scalar.SetByteSlice(key)
	return !overflow && !scalar.IsZero()
}

// ValidatePublicKey reports whether key decodes to a valid secp256k1 point
// in either SEC1 form.
func ValidatePublicKey(key []byte) bool {
	_, err := secp.ParsePubKey(key)
	return err == nil
}
