package providers

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"

	"go.bryk.io/kms/encoding"
	"go.bryk.io/kms/jwk"
	"go.bryk.io/kms/primitives/x25519"
)

func generateX25519Jwk(t *testing.T) jwk.Value {
	priv, err := x25519.GenerateKey()
	tdd.New(t).Nil(err)
	pub, err := x25519.GetPublicKey(priv)
	tdd.New(t).Nil(err)
	return jwk.Value{
		"kty": "OKP",
		"crv": "X25519",
		"x":   encoding.ToBase64URL(pub),
		"d":   encoding.ToBase64URL(priv),
	}
}

func TestES256KSignVerify(t *testing.T) {
	assert := tdd.New(t)

	p := NewES256K()
	key, err := p.GenerateKey(GenerateKeyOptions{Name: "ES256K"})
	assert.Nil(err)

	data := []byte{51, 52, 53}
	sig, err := p.Sign(key, data)
	assert.Nil(err)
	assert.Len(sig, 64)

	pub := jwk.Value{"kty": "EC", "crv": "secp256k1", "x": key["x"], "y": key["y"], "alg": "ES256K"}
	ok, err := p.Verify(pub, sig, data)
	assert.Nil(err)
	assert.True(ok)

	data[0] ^= 1
	ok, err = p.Verify(pub, sig, data)
	assert.Nil(err)
	assert.False(ok)
}

func TestES256KDeterministicFromSeed(t *testing.T) {
	assert := tdd.New(t)

	p := NewES256K()
	seed := []byte("reproducible-fixture-seed-bytes")
	k1, err := p.GenerateKey(GenerateKeyOptions{Name: "ES256K", Seed: seed})
	assert.Nil(err)
	k2, err := p.GenerateKey(GenerateKeyOptions{Name: "ES256K", Seed: seed})
	assert.Nil(err)
	assert.Equal(k1["d"], k2["d"])
	assert.Equal(k1["x"], k2["x"])
}

func TestES256KCrossAlgorithmMisuse(t *testing.T) {
	assert := tdd.New(t)

	ecdh := NewECDH()
	_, err := ecdh.Sign(jwk.Value{}, nil)
	assert.NotNil(err)

	es256k := NewES256K()
	_, err = es256k.DeriveBits(jwk.Value{}, DeriveBitsOptions{})
	assert.NotNil(err)
}

func TestEdDSASignVerify(t *testing.T) {
	assert := tdd.New(t)

	p := NewEdDSA()
	key, err := p.GenerateKey(GenerateKeyOptions{Name: "EdDSA"})
	assert.Nil(err)

	data := []byte("message")
	sig, err := p.Sign(key, data)
	assert.Nil(err)

	pub := jwk.Value{"kty": "OKP", "crv": "Ed25519", "x": key["x"]}
	ok, err := p.Verify(pub, sig, data)
	assert.Nil(err)
	assert.True(ok)

	ecKey := jwk.Value{"kty": "EC", "crv": "secp256k1", "x": key["x"], "y": key["x"]}
	_, err = p.Verify(ecKey, sig, data)
	assert.NotNil(err)
}

func TestECDHDeriveBitsCommutative(t *testing.T) {
	assert := tdd.New(t)

	p := NewECDH()
	alicePriv := generateX25519Jwk(t)
	bobPriv := generateX25519Jwk(t)

	alicePub := jwk.Value{"kty": "OKP", "crv": "X25519", "x": alicePriv["x"]}
	bobPub := jwk.Value{"kty": "OKP", "crv": "X25519", "x": bobPriv["x"]}

	s1, err := p.DeriveBits(alicePriv, DeriveBitsOptions{PublicKey: bobPub})
	assert.Nil(err)
	s2, err := p.DeriveBits(bobPriv, DeriveBitsOptions{PublicKey: alicePub})
	assert.Nil(err)
	assert.Equal(s1, s2)
	assert.Len(s1, 32)
}

func TestECDHGenerateKeyX25519(t *testing.T) {
	assert := tdd.New(t)

	p := NewECDH()
	key, err := p.GenerateKey(GenerateKeyOptions{Name: "ECDH", Curve: "X25519"})
	assert.Nil(err)
	assert.Equal("OKP", key["kty"])
	assert.Equal("X25519", key["crv"])
	assert.NotNil(key["d"])
}

func TestECDHRejectsSamePair(t *testing.T) {
	assert := tdd.New(t)

	p := NewECDH()
	priv := generateX25519Jwk(t)
	pub := jwk.Value{"kty": "OKP", "crv": "X25519", "x": priv["x"]}

	_, err := p.DeriveBits(priv, DeriveBitsOptions{PublicKey: pub})
	assert.NotNil(err)
}

func TestAESCTRRoundTrip(t *testing.T) {
	assert := tdd.New(t)

	p := NewAESCTR(256)
	key, err := p.GenerateKey(GenerateKeyOptions{Name: "A256CTR"})
	assert.Nil(err)

	counter := make([]byte, 16)
	data := []byte("the quick brown fox")
	ct, err := p.Encrypt(key, EncryptOptions{Counter: counter, Length: 64, Data: data})
	assert.Nil(err)

	pt, err := p.Decrypt(key, EncryptOptions{Counter: counter, Length: 64, Data: ct})
	assert.Nil(err)
	assert.Equal(data, pt)
}

func TestPBKDF2DeriveBits(t *testing.T) {
	assert := tdd.New(t)

	p := NewPBKDF2()
	length := 256
	key := jwk.Value{"kty": "oct", "k": "cGFzc3dvcmQ"} // base64url("password")
	out, err := p.DeriveBits(key, DeriveBitsOptions{
		Salt: []byte("salt"), Iterations: 1, Length: &length, Hash: "SHA-256",
	})
	assert.Nil(err)
	assert.Len(out, 32)

	badLength := 12
	_, err = p.DeriveBits(key, DeriveBitsOptions{
		Salt: []byte("salt"), Iterations: 1, Length: &badLength, Hash: "SHA-256",
	})
	assert.NotNil(err)

	_, err = p.DeriveBits(key, DeriveBitsOptions{
		Salt: []byte("salt"), Iterations: 1, Length: &length, Hash: "SHA-1",
	})
	assert.NotNil(err)
}
