package pbkdf2

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"

	"go.bryk.io/kms/primitives/digest"
)

func TestDeriveKey(t *testing.T) {
	assert := tdd.New(t)

	out, err := DeriveKey(DeriveKeyParams{
		Hash:       digest.SHA256,
		Password:   []byte("password"),
		Salt:       []byte("salt"),
		Iterations: 1,
		Length:     256,
	})
	assert.Nil(err)
	assert.Len(out, 32)

	again, err := DeriveKey(DeriveKeyParams{
		Hash:       digest.SHA256,
		Password:   []byte("password"),
		Salt:       []byte("salt"),
		Iterations: 1,
		Length:     256,
	})
	assert.Nil(err)
	assert.Equal(out, again)
}

func TestDeriveKeyRejectsBadInputs(t *testing.T) {
	assert := tdd.New(t)

	_, err := DeriveKey(DeriveKeyParams{Hash: digest.SHA256, Iterations: 0, Length: 256})
	assert.NotNil(err)

	_, err = DeriveKey(DeriveKeyParams{Hash: digest.SHA256, Iterations: 1, Length: 12})
	assert.NotNil(err)

	_, err = DeriveKey(DeriveKeyParams{Hash: "SHA-1", Iterations: 1, Length: 256})
	assert.NotNil(err)
}
