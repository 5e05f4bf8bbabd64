package secp256k1

import (
	"crypto/sha256"
	"testing"

	tdd "github.com/stretchr/testify/assert"
)

func TestGenerateSignVerify(t *testing.T) {
	assert := tdd.New(t)

	priv, err := GenerateKey()
	assert.Nil(err)
	assert.Len(priv, 32)
	assert.True(ValidatePrivateKey(priv))

	pub, err := GetPublicKey(priv, true)
	assert.Nil(err)
	assert.Len(pub, 33)
	assert.True(ValidatePublicKey(pub))

	digest := sha256.Sum256([]byte{51, 52, 53})
	sig, err := Sign(priv, digest[:])
	assert.Nil(err)
	assert.Len(sig, 64)

	assert.True(Verify(pub, sig, digest[:]))

	digest[0] ^= 1
	assert.False(Verify(pub, sig, digest[:]))
}

func TestConvertPublicKeyForms(t *testing.T) {
	assert := tdd.New(t)

	priv, _ := GenerateKey()
	compressed, _ := GetPublicKey(priv, true)
	uncompressed, err := ConvertPublicKey(compressed, false)
	assert.Nil(err)
	assert.Len(uncompressed, 65)

	backToCompressed, err := ConvertPublicKey(uncompressed, true)
	assert.Nil(err)
	assert.Equal(compressed, backToCompressed)

	_, err = ConvertPublicKey([]byte{1, 2, 3}, true)
	assert.NotNil(err)
}

func TestGetCurvePoints(t *testing.T) {
	assert := tdd.New(t)

	priv, _ := GenerateKey()
	pub, _ := GetPublicKey(priv, false)

	fromPub, err := GetCurvePoints(pub)
	assert.Nil(err)
	assert.Len(fromPub.X, 32)
	assert.Len(fromPub.Y, 32)

	fromPriv, err := GetCurvePoints(priv)
	assert.Nil(err)
	assert.Equal(fromPub.X, fromPriv.X)
	assert.Equal(fromPub.Y, fromPriv.Y)
}

func TestSharedSecret(t *testing.T) {
	assert := tdd.New(t)

	alicePriv, _ := GenerateKey()
	bobPriv, _ := GenerateKey()
	alicePub, _ := GetPublicKey(alicePriv, true)
	bobPub, _ := GetPublicKey(bobPriv, true)

	s1, err := SharedSecret(alicePriv, bobPub)
	assert.Nil(err)
	s2, err := SharedSecret(bobPriv, alicePub)
	assert.Nil(err)
	assert.Equal(s1, s2)
	assert.Len(s1, 32)
}

func TestValidation(t *testing.T) {
	assert := tdd.New(t)

	assert.False(ValidatePrivateKey([]byte{1, 2, 3}))
	assert.False(ValidatePublicKey([]byte{1, 2, 3}))
}
