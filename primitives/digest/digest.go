// Package digest provides the small set of SHA-2 hash functions the rest of
// this module is allowed to use. SHA-1 is intentionally absent: no caller
// in this tree may depend on it.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"

	"go.bryk.io/kms/errors"
)

// Name identifies a supported digest algorithm.
type Name string

const (
	SHA256 Name = "SHA-256"
	SHA384 Name = "SHA-384"
	SHA512 Name = "SHA-512"
)

// Size returns the output length in bytes for a supported digest name.
func Size(name Name) (int, error) {
	switch name {
	case SHA256:
		return sha256.Size, nil
	case SHA384:
		return sha512.Size384, nil
	case SHA512:
		return sha512.Size, nil
	default:
		return 0, errors.NotSupportedf("Algorithm not supported: '%s'", name)
	}
}

// Sum hashes data with the named algorithm.
func Sum(name Name, data []byte) ([]byte, error) {
	switch name {
	case SHA256:
		sum := sha256.Sum256(data)
		return sum[:], nil
	case SHA384:
		sum := sha512.Sum384(data)
		return sum[:], nil
	case SHA512:
		sum := sha512.Sum512(data)
		return sum[:], nil
	default:
		return nil, errors.NotSupportedf("Algorithm not supported: '%s'", name)
	}
}
