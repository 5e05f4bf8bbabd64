package providers

import (
	"go.bryk.io/kms/encoding"
	"go.bryk.io/kms/errors"
	"go.bryk.io/kms/jwk"
	"go.bryk.io/kms/primitives/ed25519"
	"go.bryk.io/kms/primitives/seedexpand"
)

var eddsaNames = map[string]bool{"EdDSA": true}

// EdDSA implements Ed25519 signing. Verify additionally accepts only OKP
// keys, rejecting EC keys with an "operation is only valid for OKP ..."
// message.
type EdDSA struct {
	BaseAlgorithm
}

// NewEdDSA constructs the EdDSA provider.
func NewEdDSA() *EdDSA {
	return &EdDSA{BaseAlgorithm{name: "EdDSA"}}
}

func (p *EdDSA) Names() map[string]bool { return eddsaNames }

func (p *EdDSA) GenerateKey(opts GenerateKeyOptions) (jwk.Value, error) {
	if err := checkAlgorithmName(opts.Name, p.Names()); err != nil {
		return nil, err
	}
	var priv []byte
	var err error
	if len(opts.Seed) > 0 {
		priv, err = seedexpand.Expand(opts.Seed, "EdDSA", 32)
	} else {
		priv, err = ed25519.GenerateKey()
	}
	if err != nil {
		return nil, err
	}
	pub, err := ed25519.GetPublicKey(priv)
	if err != nil {
		return nil, err
	}
	key := jwk.Value{
		"kty": "OKP",
		"crv": "Ed25519",
		"x":   encoding.ToBase64URL(pub),
		"d":   encoding.ToBase64URL(priv),
		"alg": "EdDSA",
	}
	kid, err := jwk.ComputeThumbprint(key)
	if err != nil {
		return nil, err
	}
	key["kid"] = kid
	if len(opts.KeyOperations) > 0 {
		key["key_ops"] = opts.KeyOperations
	}
	return key, nil
}

func (p *EdDSA) Sign(key jwk.Value, data []byte) ([]byte, error) {
	if err := checkOkpKeyType(key); err != nil {
		return nil, err
	}
	if err := checkKeyAlgorithm(key, "EdDSA"); err != nil {
		return nil, err
	}
	if !jwk.IsOkpPrivateJwk(key) {
		return nil, errors.InvalidAccess("operation is only valid for OKP private keys")
	}
	if err := checkKeyOperations(key, "sign"); err != nil {
		return nil, err
	}
	d, err := decodeJwkMember(key, "d")
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(d, data)
}

func (p *EdDSA) Verify(key jwk.Value, signature, data []byte) (bool, error) {
	if err := checkOkpKeyType(key); err != nil {
		return false, err
	}
	if err := checkKeyAlgorithm(key, "EdDSA"); err != nil {
		return false, err
	}
	if !jwk.IsOkpPublicJwk(key) {
		return false, errors.InvalidAccess("operation is only valid for OKP public keys")
	}
	if err := checkKeyOperations(key, "verify"); err != nil {
		return false, err
	}
	x, err := decodeJwkMember(key, "x")
	if err != nil {
		return false, err
	}
	return ed25519.Verify(x, signature, data), nil
}

func checkOkpKeyType(key jwk.Value) error {
	kty, _ := key["kty"].(string)
	if kty != "OKP" {
		return errors.InvalidAccess("operation is only valid for OKP keys")
	}
	return checkCurve(key, "Ed25519")
}
