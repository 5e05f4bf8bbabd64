package providers

import (
	"crypto/sha256"

	"go.bryk.io/kms/encoding"
	"go.bryk.io/kms/errors"
	"go.bryk.io/kms/jwk"
	"go.bryk.io/kms/primitives/secp256k1"
	"go.bryk.io/kms/primitives/seedexpand"
)

// es256kNames is the single name this provider recognizes.
var es256kNames = map[string]bool{"ES256K": true}

// ES256K implements ECDSA over secp256k1 (RFC 8812's ES256K), exposing
// only generateKey, sign and verify; every other capability falls back to
// BaseAlgorithm's "is not valid for ES256K" stub.
type ES256K struct {
	BaseAlgorithm
}

// NewES256K constructs the ES256K provider.
func NewES256K() *ES256K {
	return &ES256K{BaseAlgorithm{name: "ES256K"}}
}

func (p *ES256K) Names() map[string]bool { return es256kNames }

func (p *ES256K) GenerateKey(opts GenerateKeyOptions) (jwk.Value, error) {
	if err := checkAlgorithmName(opts.Name, p.Names()); err != nil {
		return nil, err
	}
	priv, err := deriveOrGeneratePrivateKey(opts.Seed, "ES256K")
	if err != nil {
		return nil, err
	}
	compressed := true
	pub, err := secp256k1.GetPublicKey(priv, compressed)
	if err != nil {
		return nil, err
	}
	pts, err := secp256k1.GetCurvePoints(pub)
	if err != nil {
		return nil, err
	}
	key := jwk.Value{
		"kty": "EC",
		"crv": "secp256k1",
		"x":   encoding.ToBase64URL(pts.X),
		"y":   encoding.ToBase64URL(pts.Y),
		"d":   encoding.ToBase64URL(priv),
		"alg": "ES256K",
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

func (p *ES256K) Sign(key jwk.Value, data []byte) ([]byte, error) {
	if err := checkKeyType(key, "EC"); err != nil {
		return nil, err
	}
	if err := checkCurve(key, "secp256k1"); err != nil {
		return nil, err
	}
	if err := checkKeyAlgorithm(key, "ES256K"); err != nil {
		return nil, err
	}
	if !jwk.IsEcPrivateJwk(key) {
		return nil, errors.InvalidAccess("Key type of the provided key must be private")
	}
	if err := checkKeyOperations(key, "sign"); err != nil {
		return nil, err
	}
	d, err := decodeJwkMember(key, "d")
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(data)
	sig, err := secp256k1.Sign(d, digest[:])
	if err != nil {
		return nil, errors.Wrap(err, "Operation failed: sign")
	}
	return sig, nil
}

func (p *ES256K) Verify(key jwk.Value, signature, data []byte) (bool, error) {
	if err := checkKeyType(key, "EC"); err != nil {
		return false, err
	}
	if err := checkCurve(key, "secp256k1"); err != nil {
		return false, err
	}
	if err := checkKeyAlgorithm(key, "ES256K"); err != nil {
		return false, err
	}
	if !jwk.IsEcPublicJwk(key) {
		return false, errors.InvalidAccess("Key type of the provided key must be public")
	}
	if err := checkKeyOperations(key, "verify"); err != nil {
		return false, err
	}
	x, err := decodeJwkMember(key, "x")
	if err != nil {
		return false, err
	}
	y, err := decodeJwkMember(key, "y")
	if err != nil {
		return false, err
	}
	pub := append(append([]byte{0x04}, x...), y...)
	digest := sha256.Sum256(data)
	return secp256k1.Verify(pub, signature, digest[:]), nil
}

// deriveOrGeneratePrivateKey returns a fresh random secp256k1 scalar, or a
// deterministic one HKDF-expanded from seed, retrying with a re-salted
// info string on the (astronomically unlikely) occasion the expanded
// scalar lands outside the curve's valid range.
func deriveOrGeneratePrivateKey(seed []byte, domain string) ([]byte, error) {
	if len(seed) == 0 {
		return secp256k1.GenerateKey()
	}
	for attempt := 0; attempt < 4; attempt++ {
		info := domain
		if attempt > 0 {
			info = domain + string(rune('0'+attempt))
		}
		candidate, err := seedexpand.Expand(seed, info, 32)
		if err != nil {
			return nil, err
		}
		if secp256k1.ValidatePrivateKey(candidate) {
			return candidate, nil
		}
	}
	return nil, errors.Operation("failed to derive a valid private key from seed")
}

func decodeJwkMember(key jwk.Value, member string) ([]byte, error) {
	s, ok := key[member].(string)
	if !ok {
		return nil, errors.TypeErrf("required arguments missing: '%s'", member)
	}
	b, err := encoding.FromBase64URL(s)
	if err != nil {
		return nil, errors.TypeErrf("'%s' is not of type base64url", member)
	}
	return b, nil
}
