package x25519

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("github.com/awnumar/memguard/core.NewCoffer.func1"))
}

func TestKeyAgreement(t *testing.T) {
	assert := tdd.New(t)

	alicePriv, err := GenerateKey()
	assert.Nil(err)
	bobPriv, err := GenerateKey()
	assert.Nil(err)

	alicePub, err := GetPublicKey(alicePriv)
	assert.Nil(err)
	bobPub, err := GetPublicKey(bobPriv)
	assert.Nil(err)

	s1, err := SharedSecret(alicePriv, bobPub)
	assert.Nil(err)
	s2, err := SharedSecret(bobPriv, alicePub)
	assert.Nil(err)
	assert.Equal(s1, s2)
	assert.Len(s1, 32)
}

func TestValidatePublicKeyNotImplemented(t *testing.T) {
	assert := tdd.New(t)

	_, err := ValidatePublicKey(make([]byte, 32))
	assert.NotNil(err)
}
