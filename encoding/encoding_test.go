package encoding

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"
)

func TestUniversalTypeOf(t *testing.T) {
	assert := tdd.New(t)
	assert.Equal(TypeUndefined, UniversalTypeOf(nil))
	assert.Equal(TypeUint8Array, UniversalTypeOf([]byte("x")))
	assert.Equal(TypeArrayBuffer, UniversalTypeOf([32]byte{}))
	assert.Equal(TypeString, UniversalTypeOf("x"))
	assert.Equal(TypeBoolean, UniversalTypeOf(true))
	assert.Equal(TypeNumber, UniversalTypeOf(42))
	assert.Equal(TypeNumber, UniversalTypeOf(3.14))
	assert.Equal(TypeArray, UniversalTypeOf([]interface{}{1, 2}))
	assert.Equal(TypeObject, UniversalTypeOf(map[string]interface{}{"a": 1}))
	var p *int
	assert.Equal(TypeNull, UniversalTypeOf(p))
}

func TestCanonicalize(t *testing.T) {
	assert := tdd.New(t)

	obj := map[string]interface{}{
		"kty": "EC",
		"crv": "secp256k1",
		"x":   "1SRP",
		"y":   "EuCL",
	}
	out, err := Canonicalize(obj)
	assert.Nil(err)
	assert.Equal(`{"crv":"secp256k1","kty":"EC","x":"1SRP","y":"EuCL"}`, out)

	// undefined (nil) values are dropped.
	obj2 := map[string]interface{}{"a": "1", "b": nil}
	out2, err := Canonicalize(obj2)
	assert.Nil(err)
	assert.Equal(`{"a":"1"}`, out2)

	// array order is preserved.
	out3, err := Canonicalize([]interface{}{"b", "a"})
	assert.Nil(err)
	assert.Equal(`["b","a"]`, out3)
}

func TestConvertRoundTrip(t *testing.T) {
	assert := tdd.New(t)

	data := []byte{0x01, 0x02, 0xff}
	b64 := ToBase64URL(data)
	back, err := FromBase64URL(b64)
	assert.Nil(err)
	assert.Equal(data, back)

	hx := ToHex(data)
	back2, err := FromHex(hx)
	assert.Nil(err)
	assert.Equal(data, back2)

	u := ToUTF8("hello")
	assert.Equal("hello", FromUTF8(u))

	b, err := ToBytes("deadbeef", SourceHex)
	assert.Nil(err)
	assert.Equal([]byte{0xde, 0xad, 0xbe, 0xef}, b)

	_, err = ToBytes(42, SourceHex)
	assert.NotNil(err)
}
