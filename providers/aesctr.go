package providers

import (
	"go.bryk.io/kms/encoding"
	"go.bryk.io/kms/errors"
	"go.bryk.io/kms/jwk"
	"go.bryk.io/kms/primitives/aesctr"
)

// AESCTR implements AES-CTR symmetric encryption for a single key length
// (128, 192 or 256 bits), one instance per A{128,192,256}CTR name.
type AESCTR struct {
	BaseAlgorithm
	length int
	names  map[string]bool
}

// NewAESCTR constructs the provider for the given key length in bits.
func NewAESCTR(length int) *AESCTR {
	name := map[int]string{128: "A128CTR", 192: "A192CTR", 256: "A256CTR"}[length]
	return &AESCTR{
		BaseAlgorithm: BaseAlgorithm{name: name},
		length:        length,
		names:         map[string]bool{name: true},
	}
}

func (p *AESCTR) Names() map[string]bool { return p.names }

func (p *AESCTR) GenerateKey(opts GenerateKeyOptions) (jwk.Value, error) {
	name := ""
	for n := range p.names {
		name = n
	}
	if err := checkAlgorithmName(opts.Name, p.Names()); err != nil {
		return nil, err
	}
	k, err := aesctr.GenerateKey(p.length)
	if err != nil {
		return nil, err
	}
	key := jwk.Value{
		"kty": "oct",
		"k":   encoding.ToBase64URL(k),
		"alg": name,
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

func (p *AESCTR) Encrypt(key jwk.Value, opts EncryptOptions) ([]byte, error) {
	k, err := p.keyBytes(key, "encrypt")
	if err != nil {
		return nil, err
	}
	out, err := aesctr.Encrypt(aesctr.Params{Counter: opts.Counter, Length: opts.Length, Key: k, Data: opts.Data})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.Operation("Operation failed: encrypt")
	}
	return out, nil
}

func (p *AESCTR) Decrypt(key jwk.Value, opts EncryptOptions) ([]byte, error) {
	k, err := p.keyBytes(key, "decrypt")
	if err != nil {
		return nil, err
	}
	return aesctr.Decrypt(aesctr.Params{Counter: opts.Counter, Length: opts.Length, Key: k, Data: opts.Data})
}

func (p *AESCTR) keyBytes(key jwk.Value, op string) ([]byte, error) {
	if err := checkKeyType(key, "oct"); err != nil {
		return nil, err
	}
	if err := checkKeyAlgorithm(key, p.BaseAlgorithm.name); err != nil {
		return nil, err
	}
	if err := checkKeyOperations(key, op); err != nil {
		return nil, err
	}
	return decodeJwkMember(key, "k")
}
