package providers

import (
	"go.bryk.io/kms/errors"
	"go.bryk.io/kms/jwk"
	"go.bryk.io/kms/primitives/digest"
	xpbkdf2 "go.bryk.io/kms/primitives/pbkdf2"
)

var pbkdf2Names = map[string]bool{"PBKDF2": true}

var pbkdf2AllowedHashes = map[string]bool{
	string(digest.SHA256): true,
	string(digest.SHA384): true,
	string(digest.SHA512): true,
}

// PBKDF2 implements password-based key derivation. Only deriveBits is
// supported; every other capability falls back to the "is not valid for
// PBKDF2" stub.
type PBKDF2 struct {
	BaseAlgorithm
}

// NewPBKDF2 constructs the PBKDF2 provider.
func NewPBKDF2() *PBKDF2 {
	return &PBKDF2{BaseAlgorithm{name: "PBKDF2"}}
}

func (p *PBKDF2) Names() map[string]bool { return pbkdf2Names }

func (p *PBKDF2) DeriveBits(baseKey jwk.Value, opts DeriveBitsOptions) ([]byte, error) {
	if err := checkKeyType(baseKey, "oct"); err != nil {
		return nil, err
	}
	if !pbkdf2AllowedHashes[opts.Hash] {
		return nil, errors.TypeErrf("Out of range: unsupported hash '%s'", opts.Hash)
	}
	if opts.Iterations < 1 {
		return nil, errors.Operation("Out of range: 'iterations' must be >= 1")
	}
	if len(opts.Salt) == 0 {
		return nil, errors.TypeErr("Required parameter was missing: 'salt'")
	}
	if opts.Length == nil {
		return nil, errors.TypeErr("Required parameter was missing: 'length'")
	}
	length := *opts.Length
	if length <= 0 || length%8 != 0 {
		return nil, errors.Operation("'length' must be a multiple of 8")
	}

	password, err := decodeJwkMember(baseKey, "k")
	if err != nil {
		return nil, err
	}
	return xpbkdf2.DeriveKey(xpbkdf2.DeriveKeyParams{
		Hash:       digest.Name(opts.Hash),
		Password:   password,
		Salt:       opts.Salt,
		Iterations: opts.Iterations,
		Length:     length,
	})
}
