package errors

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"
)

func TestTaxonomy(t *testing.T) {
	assert := tdd.New(t)

	err := NotSupported("Algorithm not supported")
	assert.True(IsNotSupported(err))
	assert.False(IsOperation(err))
	assert.Equal("Algorithm not supported", err.Error())

	err = InvalidAccessf("is not valid for %s", "ECDH")
	assert.True(IsInvalidAccess(err))
	assert.Equal("is not valid for ECDH", err.Error())

	err = Operation("Wrong tag")
	assert.True(IsOperation(err))

	err = TypeErr("Required parameter was missing")
	assert.True(IsTypeErr(err))

	kind, ok := KindOf(New("plain error"))
	assert.False(ok)
	assert.Equal(Kind(""), kind)
}
