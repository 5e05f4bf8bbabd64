package aesctr

import (
	"crypto/aes"
	"testing"

	tdd "github.com/stretchr/testify/assert"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	assert := tdd.New(t)

	key, err := GenerateKey(256)
	assert.Nil(err)

	counter := make([]byte, 16)
	data := []byte("the quick brown fox")

	ct, err := Encrypt(Params{Counter: counter, Length: 64, Key: key, Data: data})
	assert.Nil(err)
	assert.Len(ct, len(data))
	assert.NotEqual(data, ct)

	pt, err := Decrypt(Params{Counter: counter, Length: 64, Key: key, Data: ct})
	assert.Nil(err)
	assert.Equal(data, pt)
}

// TestCounterWrapPreservesNonce pins Length well below 128 and starts the
// counter one step from wrapping its low bits. The high-order nonce bits
// must be untouched by that wrap: cipher.NewCTR would instead carry into
// them, since it always increments the full 128-bit block.
func TestCounterWrapPreservesNonce(t *testing.T) {
	assert := tdd.New(t)

	key, err := GenerateKey(128)
	assert.Nil(err)

	counter := make([]byte, 16)
	counter[15] = 0xFF
	data := make([]byte, 32)

	ct, err := Encrypt(Params{Counter: counter, Length: 8, Key: key, Data: data})
	assert.Nil(err)

	block, err := aes.NewCipher(key)
	assert.Nil(err)

	want0 := make([]byte, 16)
	block.Encrypt(want0, counter)

	counter1 := make([]byte, 16)
	copy(counter1, counter)
	counter1[15] = 0x00
	want1 := make([]byte, 16)
	block.Encrypt(want1, counter1)

	assert.Equal(want0, ct[:16])
	assert.Equal(want1, ct[16:])
}

func TestValidation(t *testing.T) {
	assert := tdd.New(t)

	key, _ := GenerateKey(128)
	_, err := Encrypt(Params{Counter: []byte{1, 2, 3}, Length: 64, Key: key, Data: []byte("x")})
	assert.NotNil(err)

	_, err = Encrypt(Params{Counter: make([]byte, 16), Length: 200, Key: key, Data: []byte("x")})
	assert.NotNil(err)

	_, err = GenerateKey(100)
	assert.NotNil(err)
}
