package kms

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"

	"go.bryk.io/kms/jwk"
	"go.bryk.io/kms/providers"
)

func newTestManager(t *testing.T) *KeyManager {
	km, err := NewKeyManager(Config{Store: NewMemKeyStore()})
	tdd.New(t).Nil(err)
	return km
}

func TestGenerateSignVerifyES256K(t *testing.T) {
	assert := tdd.New(t)
	km := newTestManager(t)

	pair, err := km.GenerateKey(OperationOptions{}, providers.GenerateKeyOptions{Name: "ES256K"})
	assert.Nil(err)
	mk, ok := pair.(ManagedKeyPair)
	assert.True(ok)

	data := []byte{51, 52, 53}
	sig, err := km.Sign(OperationOptions{}, "ES256K", mk.ID, data)
	assert.Nil(err)
	assert.Len(sig, 64)

	ok2, err := km.Verify(OperationOptions{}, "ES256K", mk.ID, sig, data)
	assert.Nil(err)
	assert.True(ok2)

	data[0] ^= 1
	ok3, err := km.Verify(OperationOptions{}, "ES256K", mk.ID, sig, data)
	assert.Nil(err)
	assert.False(ok3)
}

func TestGenerateKeyUnknownAlgorithm(t *testing.T) {
	assert := tdd.New(t)
	km := newTestManager(t)

	_, err := km.GenerateKey(OperationOptions{}, providers.GenerateKeyOptions{Name: "bogus"})
	assert.NotNil(err)
}

func TestImportDuplicateID(t *testing.T) {
	assert := tdd.New(t)
	store := NewMemKeyStore()
	kmsInstance := NewLocalKms("local", store, nil)

	_, err := store.ImportKey(ManagedKey{ID: "dup", Type: "secret"})
	assert.Nil(err)
	_, err = store.ImportKey(ManagedKey{ID: "dup", Type: "secret"})
	assert.NotNil(err)
	_ = kmsInstance
}

func TestKeyURIResolution(t *testing.T) {
	assert := tdd.New(t)
	km := newTestManager(t)

	pair, err := km.GenerateKey(OperationOptions{}, providers.GenerateKeyOptions{Name: "EdDSA"})
	assert.Nil(err)
	mk := pair.(ManagedKeyPair)

	entry := km.GetKey(OperationOptions{}, mk.ID)
	assert.NotNil(entry)

	spec, err := specOf(entry)
	assert.Nil(err)
	uri, err := jwk.KeyURI(spec)
	assert.Nil(err)

	resolved := km.GetKey(OperationOptions{}, uri)
	assert.NotNil(resolved)
}

func TestUnknownKmsName(t *testing.T) {
	assert := tdd.New(t)
	km := newTestManager(t)

	_, err := km.getKms("does-not-exist")
	assert.NotNil(err)
}

func TestDeriveBitsDefaultsLength(t *testing.T) {
	assert := tdd.New(t)
	km := newTestManager(t)

	aPair, err := km.GenerateKey(OperationOptions{}, providers.GenerateKeyOptions{Name: "ECDH", Curve: "X25519"})
	assert.Nil(err)
	bPair, err := km.GenerateKey(OperationOptions{}, providers.GenerateKeyOptions{Name: "ECDH", Curve: "X25519"})
	assert.Nil(err)

	a := aPair.(ManagedKeyPair)
	b := bPair.(ManagedKeyPair)
	bPubSpec, err := specOf(km.GetKey(OperationOptions{}, b.ID))
	assert.Nil(err)

	secret, err := km.DeriveBits(OperationOptions{}, "ECDH", a.ID, providers.DeriveBitsOptions{PublicKey: bPubSpec})
	assert.Nil(err)
	assert.Len(secret, 32)
}
