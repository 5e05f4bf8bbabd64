// Package concatkdf implements the NIST SP 800-56A §5.8.1 single-step
// concatenation key derivation function, in the restricted "Concat KDF"
// shape RFC 7518 §6.2.2.2 (ECDH-ES) adopts: a single SHA-256 round over
// counter || sharedSecret || otherInfo.
package concatkdf

import (
	"crypto/sha256"
	"encoding/binary"

	"go.bryk.io/kms/errors"
)

// OtherInfo is the fixed-shape "other information" fed into the KDF beside
// the shared secret, per RFC 7518 §6.2.2.2.
type OtherInfo struct {
	AlgorithmID string
	PartyUInfo  string
	PartyVInfo  string
	// SuppPubInfo carries the requested key length in bits. It is accepted
	// as an int or, equivalently, a float64 (the JSON-decoded numeric
	// form); both are treated identically.
	SuppPubInfo interface{}
	// SuppPrivInfo is optional additional info; a numeric value is encoded
	// like SuppPubInfo, a string as length-prefixed UTF-8 bytes.
	SuppPrivInfo interface{}
}

func lengthPrefixed(b []byte) []byte {
	out := make([]byte, 4+len(b))
	binary.BigEndian.PutUint32(out[:4], uint32(len(b)))
	copy(out[4:], b)
	return out
}

// fixedLengthField renders v (the requested key length, in bits) as a bare
// 32-bit big-endian integer. Per RFC 7518 §C, suppPubInfo/suppPrivInfo carry
// a fixed-length numeric value and are NOT length-prefixed like the other
// OtherInfo fields.
func fixedLengthField(v interface{}) ([]byte, error) {
	var n int64
	switch t := v.(type) {
	case int:
		n = int64(t)
	case int64:
		n = t
	case uint64:
		n = int64(t)
	case float64:
		n = int64(t)
	default:
		return nil, errors.TypeErr("Fixed length input must be a number")
	}

	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(n))
	return buf, nil
}

// computeOtherInfo serializes otherInfo per RFC 7518 §C: algorithmId,
// partyUInfo and partyVInfo are each a 4-byte big-endian length prefix
// followed by their raw bytes (UTF-8 for strings); suppPubInfo and a
// numeric suppPrivInfo are bare 32-bit big-endian integers with no length
// prefix, while a string suppPrivInfo is length-prefixed like the first
// three fields. The fields are concatenated algorithmId || partyUInfo ||
// partyVInfo || suppPubInfo [|| suppPrivInfo].
func computeOtherInfo(info OtherInfo) ([]byte, error) {
	var out []byte
	out = append(out, lengthPrefixed([]byte(info.AlgorithmID))...)
	out = append(out, lengthPrefixed([]byte(info.PartyUInfo))...)
	out = append(out, lengthPrefixed([]byte(info.PartyVInfo))...)

	pub, err := fixedLengthField(info.SuppPubInfo)
	if err != nil {
		return nil, err
	}
	out = append(out, pub...)

	if s, ok := info.SuppPrivInfo.(string); ok {
		out = append(out, lengthPrefixed([]byte(s))...)
	} else if info.SuppPrivInfo != nil {
		priv, err := fixedLengthField(info.SuppPrivInfo)
		if err != nil {
			return nil, err
		}
		out = append(out, priv...)
	}
	return out, nil
}

// DeriveBitsParams bundles the Concat KDF derivation inputs.
type DeriveBitsParams struct {
	SharedSecret []byte
	// KeyDataLen is the desired output size in bits.
	KeyDataLen int
	OtherInfo   OtherInfo
}

// DeriveBits derives KeyDataLen/8 bytes from SharedSecret using the
// single-round Concat KDF construction: H(counter=1 || Z || OtherInfo),
// truncated to KeyDataLen bits. Only a single round (keyDataLen <= the
// SHA-256 output size) is supported; longer outputs would require
// concatenating successive counter values, which this module's callers
// never request.
func DeriveBits(p DeriveBitsParams) ([]byte, error) {
	if p.KeyDataLen > sha256.Size*8 {
		return nil, errors.NotSupportedf("rounds not supported")
	}

	otherInfo, err := computeOtherInfo(p.OtherInfo)
	if err != nil {
		return nil, err
	}

	h := sha256.New()
	counter := []byte{0, 0, 0, 1}
	h.Write(counter)
	h.Write(p.SharedSecret)
	h.Write(otherInfo)
	sum := h.Sum(nil)

	return sum[:p.KeyDataLen/8], nil
}
