package ed25519

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// memguard's global enclave re-key routine leaks a goroutine that
	// goleak otherwise flags on every run.
	// https://github.com/awnumar/memguard/blob/master/core/coffer.go#L36
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("github.com/awnumar/memguard/core.NewCoffer.func1"))
}

func TestGenerateSignVerify(t *testing.T) {
	assert := tdd.New(t)

	priv, err := GenerateKey()
	assert.Nil(err)
	assert.Len(priv, 32)

	pub, err := GetPublicKey(priv)
	assert.Nil(err)
	assert.Len(pub, 32)

	msg := []byte("message content")
	sig, err := Sign(priv, msg)
	assert.Nil(err)
	assert.Len(sig, 64)

	assert.True(Verify(pub, sig, msg))
	assert.False(Verify(pub, sig, []byte("other content")))
	assert.False(Verify(pub, append(sig, sig...), msg))
}

func TestValidatePublicKey(t *testing.T) {
	assert := tdd.New(t)

	priv, _ := GenerateKey()
	pub, _ := GetPublicKey(priv)
	assert.True(ValidatePublicKey(pub))
	assert.False(ValidatePublicKey([]byte("too short")))
}

func TestConvertToX25519(t *testing.T) {
	assert := tdd.New(t)

	priv, _ := GenerateKey()
	pub, _ := GetPublicKey(priv)

	xPriv := ConvertPrivateKeyToX25519(priv)
	assert.Len(xPriv, 32)

	xPub, err := ConvertPublicKeyToX25519(pub)
	assert.Nil(err)
	assert.Len(xPub, 32)

	_, err = ConvertPublicKeyToX25519([]byte("bad length"))
	assert.NotNil(err)
}
