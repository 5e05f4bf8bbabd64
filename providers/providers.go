// Package providers implements the algorithm-provider capability layer:
// per-algorithm validation and dispatch over the primitives package. Each
// algorithm supports only a subset of operations (a hash can't sign, a
// signer can't deriveBits); Go expresses that with an embeddable base type
// whose stub methods are shadowed only by the operations a concrete
// algorithm actually supports.
package providers

import (
	"strings"

	"go.bryk.io/kms/errors"
	"go.bryk.io/kms/jwk"
)

// GenerateKeyOptions bundles generateKey inputs across every algorithm
// family; only the fields relevant to a given provider are consulted.
type GenerateKeyOptions struct {
	Name                string
	Curve               string
	Length              int
	CompressedPublicKey bool
	KeyOperations       []string
	Extractable         bool
	// Seed, when non-empty, makes asymmetric generation deterministic:
	// the private scalar is derived from Seed via HKDF instead of
	// drawn from crypto/rand. Intended for reproducible test fixtures,
	// never for production key material.
	Seed []byte
}

// EncryptOptions bundles encrypt/decrypt inputs across every symmetric
// algorithm family.
type EncryptOptions struct {
	Counter        []byte
	Length         int
	IV             []byte
	TagLength      int
	AdditionalData []byte
	Data           []byte
}

// DeriveBitsOptions bundles deriveBits inputs (ECDH, PBKDF2).
type DeriveBitsOptions struct {
	PublicKey  jwk.Value
	Length     *int
	Salt       []byte
	Iterations int
	Hash       string
}

// Algorithm is the capability set a provider may implement. Every method
// except Names has a default, InvalidAccessError-raising implementation via BaseAlgorithm;
// concrete providers embed it and shadow only what applies to them.
type Algorithm interface {
	Names() map[string]bool
	GenerateKey(opts GenerateKeyOptions) (jwk.Value, error)
	Sign(key jwk.Value, data []byte) ([]byte, error)
	Verify(key jwk.Value, signature, data []byte) (bool, error)
	Encrypt(key jwk.Value, opts EncryptOptions) ([]byte, error)
	Decrypt(key jwk.Value, opts EncryptOptions) ([]byte, error)
	DeriveBits(key jwk.Value, opts DeriveBitsOptions) ([]byte, error)
}

// BaseAlgorithm supplies the "not valid for <alg>" stub for every
// operation; concrete providers embed this and override only the
// operations their algorithm supports.
type BaseAlgorithm struct {
	name string
}

func (b BaseAlgorithm) invalid(op string) error {
	return errors.InvalidAccessf("%s is not valid for %s", op, b.name)
}

func (b BaseAlgorithm) GenerateKey(GenerateKeyOptions) (jwk.Value, error) {
	return nil, b.invalid("generateKey")
}
func (b BaseAlgorithm) Sign(jwk.Value, []byte) ([]byte, error) {
	return nil, b.invalid("sign")
}
func (b BaseAlgorithm) Verify(jwk.Value, []byte, []byte) (bool, error) {
	return false, b.invalid("verify")
}
func (b BaseAlgorithm) Encrypt(jwk.Value, EncryptOptions) ([]byte, error) {
	return nil, b.invalid("encrypt")
}
func (b BaseAlgorithm) Decrypt(jwk.Value, EncryptOptions) ([]byte, error) {
	return nil, b.invalid("decrypt")
}
func (b BaseAlgorithm) DeriveBits(jwk.Value, DeriveBitsOptions) ([]byte, error) {
	return nil, b.invalid("deriveBits")
}

// CanonicalName folds an algorithm name to the canonical casing the
// registry indexes by (ECDSA, ECDH, EdDSA, AES-CTR, ES256K, A128CTR, ...).
func CanonicalName(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	switch upper {
	case "ECDH":
		return "ECDH"
	case "EDDSA":
		return "EdDSA"
	default:
		return upper
	}
}

// checkAlgorithmName validates that name is non-empty and recognized by
// the provider's declared name-set.
func checkAlgorithmName(name string, names map[string]bool) error {
	if name == "" {
		return errors.NotSupported("Algorithm not supported")
	}
	if !names[CanonicalName(name)] {
		return errors.NotSupportedf("Algorithm not supported: '%s'", name)
	}
	return nil
}

// checkKeyAlgorithm validates that a key's declared `alg`, when present,
// matches the provider's own canonical name.
func checkKeyAlgorithm(key jwk.Value, providerName string) error {
	alg, ok := key["alg"].(string)
	if !ok || alg == "" {
		return nil
	}
	if CanonicalName(alg) != CanonicalName(providerName) {
		return errors.InvalidAccessf("Algorithm '%s' does not match the provided '%s' key.", providerName, alg)
	}
	return nil
}

// checkKeyType validates that key's `kty` is one of allowed.
func checkKeyType(key jwk.Value, allowed ...string) error {
	kty, _ := key["kty"].(string)
	for _, a := range allowed {
		if kty == a {
			return nil
		}
	}
	return errors.InvalidAccessf("Key type of the provided key must be %s", strings.Join(allowed, " or "))
}

// checkKeyOperations validates that, when `key_ops` is present, op is a
// member of it.
func checkKeyOperations(key jwk.Value, op string) error {
	raw, ok := key["key_ops"]
	if !ok {
		return nil
	}
	ops, ok := raw.([]string)
	if !ok {
		if rawIface, ok2 := raw.([]interface{}); ok2 {
			for _, v := range rawIface {
				if s, ok3 := v.(string); ok3 && s == op {
					return nil
				}
			}
			return errors.InvalidAccessf("'%s' is not valid for the provided key", op)
		}
		return nil
	}
	for _, o := range ops {
		if o == op {
			return nil
		}
	}
	return errors.InvalidAccessf("'%s' is not valid for the provided key", op)
}

// checkCurve validates that key's `crv` is one of allowed.
func checkCurve(key jwk.Value, allowed ...string) error {
	crv, _ := key["crv"].(string)
	for _, a := range allowed {
		if crv == a {
			return nil
		}
	}
	return errors.TypeErrf("Out of range: unsupported curve '%s'", crv)
}
