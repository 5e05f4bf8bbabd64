package jwk

import "go.bryk.io/kms/encoding"

// isObject rejects anything that isn't a genuine key-value object: nil,
// arrays, and scalar values all fail §4.2's "must be an object (not null,
// not array, not scalar)" precondition.
func isObject(v interface{}) (Value, bool) {
	m, ok := v.(Value)
	if !ok {
		return nil, false
	}
	if encoding.UniversalTypeOf(m) != encoding.TypeObject {
		return nil, false
	}
	return m, true
}

func isStringMember(v Value, key string) bool {
	s, ok := v[key]
	if !ok {
		return false
	}
	_, isStr := s.(string)
	return isStr
}

func hasKty(v Value, kty string) bool {
	k, ok := v["kty"].(string)
	return ok && k == kty
}

// IsEcPublicJwk reports whether v is a syntactically valid EC public key:
// {kty:"EC", crv, x, y}.
func IsEcPublicJwk(v interface{}) bool {
	m, ok := isObject(v)
	if !ok || !hasKty(m, "EC") {
		return false
	}
	return isStringMember(m, "crv") && isStringMember(m, "x") && isStringMember(m, "y")
}

// IsEcPrivateJwk reports whether v is a syntactically valid EC private
// key: an EC public key plus a string `d` member.
func IsEcPrivateJwk(v interface{}) bool {
	m, ok := isObject(v)
	if !ok || !IsEcPublicJwk(m) {
		return false
	}
	return isStringMember(m, "d")
}

// IsOkpPublicJwk reports whether v is a syntactically valid OKP public
// key: {kty:"OKP", crv ∈ {Ed25519, X25519}, x}.
func IsOkpPublicJwk(v interface{}) bool {
	m, ok := isObject(v)
	if !ok || !hasKty(m, "OKP") {
		return false
	}
	crv, _ := m["crv"].(string)
	if crv != "Ed25519" && crv != "X25519" {
		return false
	}
	return isStringMember(m, "x")
}

// IsOkpPrivateJwk reports whether v is a syntactically valid OKP private
// key: an OKP public key plus a string `d` member.
func IsOkpPrivateJwk(v interface{}) bool {
	m, ok := isObject(v)
	if !ok || !IsOkpPublicJwk(m) {
		return false
	}
	return isStringMember(m, "d")
}

// IsOctPrivateJwk reports whether v is a syntactically valid symmetric
// key: {kty:"oct", k}. Symmetric keys have no public form.
func IsOctPrivateJwk(v interface{}) bool {
	m, ok := isObject(v)
	if !ok || !hasKty(m, "oct") {
		return false
	}
	return isStringMember(m, "k")
}

// IsRsaPublicJwk reports whether v is a syntactically valid RSA public
// key: {kty:"RSA", n, e}.
func IsRsaPublicJwk(v interface{}) bool {
	m, ok := isObject(v)
	if !ok || !hasKty(m, "RSA") {
		return false
	}
	return isStringMember(m, "n") && isStringMember(m, "e")
}

// IsRsaPrivateJwk reports whether v is a syntactically valid RSA private
// key: an RSA public key plus a string `d` member.
func IsRsaPrivateJwk(v interface{}) bool {
	m, ok := isObject(v)
	if !ok || !IsRsaPublicJwk(m) {
		return false
	}
	return isStringMember(m, "d")
}

// IsPublicJwk reports whether v is any recognized public-key shape
// (EC, OKP or RSA public).
func IsPublicJwk(v interface{}) bool {
	return IsEcPublicJwk(v) || IsOkpPublicJwk(v) || IsRsaPublicJwk(v)
}

// IsPrivateJwk reports whether v is any recognized private-key shape
// (EC, OKP or RSA private, or an oct secret key).
func IsPrivateJwk(v interface{}) bool {
	return IsEcPrivateJwk(v) || IsOkpPrivateJwk(v) || IsRsaPrivateJwk(v) || IsOctPrivateJwk(v)
}
