package providers

import (
	"go.bryk.io/kms/encoding"
	"go.bryk.io/kms/errors"
	"go.bryk.io/kms/jwk"
	"go.bryk.io/kms/primitives/secp256k1"
	"go.bryk.io/kms/primitives/seedexpand"
	"go.bryk.io/kms/primitives/x25519"
)

var ecdhNames = map[string]bool{"ECDH": true}

// ECDH implements Diffie-Hellman key agreement over either X25519 or
// secp256k1, dispatching on the keys' shared `crv`. Only generateKey and
// deriveBits are supported; sign/verify fall back to BaseAlgorithm's stub.
type ECDH struct {
	BaseAlgorithm
}

// NewECDH constructs the ECDH provider.
func NewECDH() *ECDH {
	return &ECDH{BaseAlgorithm{name: "ECDH"}}
}

func (p *ECDH) Names() map[string]bool { return ecdhNames }

func (p *ECDH) GenerateKey(opts GenerateKeyOptions) (jwk.Value, error) {
	if err := checkAlgorithmName(opts.Name, p.Names()); err != nil {
		return nil, err
	}
	switch opts.Curve {
	case "", "X25519":
		return p.generateX25519Key(opts)
	case "secp256k1":
		return p.generateSecp256k1Key(opts)
	default:
		return nil, errors.TypeErrf("Out of range: unsupported curve '%s'", opts.Curve)
	}
}

func (p *ECDH) generateX25519Key(opts GenerateKeyOptions) (jwk.Value, error) {
	var priv []byte
	var err error
	if len(opts.Seed) > 0 {
		priv, err = seedexpand.Expand(opts.Seed, "ECDH-X25519", 32)
	} else {
		priv, err = x25519.GenerateKey()
	}
	if err != nil {
		return nil, err
	}
	pub, err := x25519.GetPublicKey(priv)
	if err != nil {
		return nil, err
	}
	key := jwk.Value{
		"kty": "OKP",
		"crv": "X25519",
		"x":   encoding.ToBase64URL(pub),
		"d":   encoding.ToBase64URL(priv),
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

func (p *ECDH) generateSecp256k1Key(opts GenerateKeyOptions) (jwk.Value, error) {
	priv, err := deriveOrGeneratePrivateKey(opts.Seed, "ECDH-secp256k1")
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

func (p *ECDH) DeriveBits(baseKey jwk.Value, opts DeriveBitsOptions) ([]byte, error) {
	pub := opts.PublicKey
	if pub == nil {
		return nil, errors.TypeErr("Required parameter was missing: 'publicKey'")
	}
	if !jwk.IsPrivateJwk(baseKey) {
		return nil, errors.InvalidAccess("Key type of the provided key must be private")
	}
	if !jwk.IsPublicJwk(pub) {
		return nil, errors.InvalidAccess("Key type of the provided key must be public")
	}

	baseKty, _ := baseKey["kty"].(string)
	pubKty, _ := pub["kty"].(string)
	if baseKty != pubKty {
		return nil, errors.InvalidAccess("both keys must be of the same 'kty'")
	}
	baseCrv, _ := baseKey["crv"].(string)
	pubCrv, _ := pub["crv"].(string)
	if baseCrv != pubCrv {
		return nil, errors.InvalidAccess("both keys must be of the same 'crv'")
	}

	if err := checkKeyOperations(baseKey, "deriveBits"); err != nil {
		return nil, err
	}
	if err := checkKeyOperations(pub, "deriveBits"); err != nil {
		return nil, err
	}

	baseKid, _ := baseKey["kid"].(string)
	pubKid, _ := pub["kid"].(string)
	if derivedFromSamePair(baseKey, pub) || (baseKid != "" && baseKid == pubKid) {
		return nil, errors.InvalidAccess("shared secret cannot be computed from a single key pair")
	}

	d, err := decodeJwkMember(baseKey, "d")
	if err != nil {
		return nil, err
	}
	x, err := decodeJwkMember(pub, "x")
	if err != nil {
		return nil, err
	}

	var secret []byte
	switch baseCrv {
	case "X25519":
		secret, err = x25519.SharedSecret(d, x)
	case "secp256k1":
		y, yErr := decodeJwkMember(pub, "y")
		if yErr != nil {
			return nil, yErr
		}
		pubBytes := append([]byte{0x04}, append(append([]byte{}, x...), y...)...)
		secret, err = secp256k1.SharedSecret(d, pubBytes)
	default:
		return nil, errors.TypeErrf("Out of range: unsupported curve '%s'", baseCrv)
	}
	if err != nil {
		return nil, err
	}

	if opts.Length == nil {
		return secret, nil
	}
	length := *opts.Length
	if length%8 != 0 {
		return nil, errors.Operation("'length' must be a multiple of 8")
	}
	if length/8 > len(secret) {
		return nil, errors.Operation("Requested 'length' exceeds the byte length of the derived secret")
	}
	return secret[:length/8], nil
}

// derivedFromSamePair reports whether pub looks like it was derived from
// baseKey's own private scalar: same required members modulo the `d`
// member baseKey additionally carries.
func derivedFromSamePair(baseKey, pub jwk.Value) bool {
	baseX, _ := baseKey["x"].(string)
	pubX, _ := pub["x"].(string)
	if baseX == "" || pubX == "" {
		return false
	}
	baseY, _ := baseKey["y"]
	pubY, _ := pub["y"]
	return baseX == pubX && baseY == pubY
}
