package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"

	"go.bryk.io/kms/errors"
)

// b64 is the URL-safe, unpadded alphabet every JWK/JOSE-facing byte
// field uses (RFC 7515 §2 "base64url").
var b64 = base64.RawURLEncoding

// ToBase64URL encodes src as an unpadded, URL-safe base64 string.
func ToBase64URL(src []byte) string {
	return b64.EncodeToString(src)
}

// FromBase64URL decodes an unpadded, URL-safe base64 string. Padded input
// is rejected: JWK fields on the wire are strictly unpadded.
func FromBase64URL(src string) ([]byte, error) {
	out, err := b64.DecodeString(src)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64url value")
	}
	return out, nil
}

// ToHex encodes src as a lowercase hex string.
func ToHex(src []byte) string {
	return hex.EncodeToString(src)
}

// FromHex decodes a hex string (case-insensitive).
func FromHex(src string) ([]byte, error) {
	out, err := hex.DecodeString(src)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex value")
	}
	return out, nil
}

// ToUTF8 returns the UTF-8 byte representation of src.
func ToUTF8(src string) []byte {
	return []byte(src)
}

// FromUTF8 decodes a UTF-8 byte slice back into a string. Go strings are
// already byte-for-byte UTF-8 containers, so this never fails; it exists
// to keep the conversion table (§4.1) total and symmetrical.
func FromUTF8(src []byte) string {
	return string(src)
}

// ToObject unmarshals a JSON document (as raw bytes, or any value
// produced by ToBytes) into a generic `map[string]interface{}`/
// `[]interface{}` tree, the same shape Canonicalize expects.
func ToObject(src []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(src, &v); err != nil {
		return nil, errors.Wrap(err, "invalid JSON value")
	}
	return v, nil
}

// FromObject marshals a generic value back into its compact JSON byte
// representation.
func FromObject(src interface{}) ([]byte, error) {
	out, err := json.Marshal(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode value")
	}
	return out, nil
}

// Source tags how ToBytes interprets a string input (raw, hex, base64url
// or UTF-8 text) when normalizing "ArrayBuffer-like" input per §4.1's
// polymorphism requirement.
type Source int

const (
	// SourceRaw treats the input string as an already-decoded byte slice
	// wrapped in a string (rarely used directly; prefer passing []byte).
	SourceRaw Source = iota
	// SourceHex decodes the input string as hex.
	SourceHex
	// SourceBase64URL decodes the input string as unpadded base64url.
	SourceBase64URL
	// SourceUTF8 treats the input string as UTF-8 text to be converted to bytes.
	SourceUTF8
)

// ToBytes normalizes src (a []byte, a fixed-size byte array, or a string
// tagged with the given Source) into a []byte. An unsupported (source,
// target) pairing — e.g. a non-string, non-byte-slice value — fails with
// a typed error naming the unsupported pair, per §4.1.
func ToBytes(src interface{}, from Source) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case [16]byte:
		return v[:], nil
	case [24]byte:
		return v[:], nil
	case [32]byte:
		return v[:], nil
	case string:
		switch from {
		case SourceHex:
			return FromHex(v)
		case SourceBase64URL:
			return FromBase64URL(v)
		case SourceUTF8:
			return ToUTF8(v), nil
		case SourceRaw:
			return []byte(v), nil
		default:
			return nil, errors.NotSupportedf("unsupported conversion source %v for type %T", from, src)
		}
	default:
		return nil, errors.NotSupportedf("unsupported conversion pair (source=%T, via=%v)", src, from)
	}
}
