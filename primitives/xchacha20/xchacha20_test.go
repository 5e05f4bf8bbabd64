package xchacha20

import (
	"crypto/rand"
	"testing"

	tdd "github.com/stretchr/testify/assert"
	"golang.org/x/crypto/chacha20"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	assert := tdd.New(t)

	key := make([]byte, chacha20.KeySize)
	nonce := make([]byte, chacha20.NonceSizeX)
	_, _ = rand.Read(key)
	_, _ = rand.Read(nonce)

	data := []byte("the quick brown fox jumps over the lazy dog")
	ct, err := Encrypt(Params{Nonce: nonce, Key: key, Data: data})
	assert.Nil(err)
	assert.Len(ct, len(data))
	assert.NotEqual(data, ct)

	pt, err := Decrypt(Params{Nonce: nonce, Key: key, Data: ct})
	assert.Nil(err)
	assert.Equal(data, pt)
}

func TestInvalidSizes(t *testing.T) {
	assert := tdd.New(t)

	_, err := Encrypt(Params{Nonce: []byte{1}, Key: make([]byte, 32), Data: []byte("x")})
	assert.NotNil(err)

	_, err = Encrypt(Params{Nonce: make([]byte, 24), Key: []byte{1}, Data: []byte("x")})
	assert.NotNil(err)
}
