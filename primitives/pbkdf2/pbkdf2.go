// Package pbkdf2 wraps golang.org/x/crypto/pbkdf2 with the input validation
// and error taxonomy this module's key-derivation provider expects.
package pbkdf2

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	xpbkdf2 "golang.org/x/crypto/pbkdf2"

	"go.bryk.io/kms/errors"
	"go.bryk.io/kms/primitives/digest"
)

func hasher(name digest.Name) (func() hash.Hash, error) {
	switch name {
	case digest.SHA256:
		return sha256.New, nil
	case digest.SHA384:
		return sha512.New384, nil
	case digest.SHA512:
		return sha512.New, nil
	default:
		return nil, errors.NotSupportedf("Algorithm not supported: '%s'", name)
	}
}

// DeriveKeyParams bundles the PBKDF2 derivation inputs.
type DeriveKeyParams struct {
	Hash       digest.Name
	Password   []byte
	Salt       []byte
	Iterations int
	// Length is the desired output size in bits; must be a positive
	// multiple of 8.
	Length int
}

// DeriveKey derives Length/8 bytes from Password and Salt using Iterations
// rounds of PBKDF2 with the requested hash.
func DeriveKey(p DeriveKeyParams) ([]byte, error) {
	h, err := hasher(p.Hash)
	if err != nil {
		return nil, err
	}
	if p.Iterations < 1 {
		return nil, errors.Operation("Out of range: 'iterations' must be >= 1")
	}
	if p.Length <= 0 || p.Length%8 != 0 {
		return nil, errors.Operation("'length' must be a multiple of 8")
	}
	return xpbkdf2.Key(p.Password, p.Salt, p.Iterations, p.Length/8, h), nil
}
