package jwk

import (
	"crypto/sha256"

	"go.bryk.io/kms/encoding"
	"go.bryk.io/kms/errors"
)

// requiredMembers returns the ordered set of members RFC 7638 requires
// for a thumbprint of the given `kty`, or nil if the type is unsupported.
// Order here only documents the member set; Canonicalize always sorts
// keys itself, so thumbprint stability does not depend on this order.
func requiredMembers(kty string) []string {
	switch kty {
	case "EC":
		return []string{"crv", "kty", "x", "y"}
	case "OKP":
		return []string{"crv", "kty", "x"}
	case "oct":
		return []string{"k", "kty"}
	case "RSA":
		return []string{"e", "kty", "n"}
	default:
		return nil
	}
}

// ComputeThumbprint calculates a JWK thumbprint as defined by RFC 7638:
// canonicalize the required members for the key's `kty`, SHA-256 the
// UTF-8 bytes, and base64url-encode (unpadded) the digest. v may be a raw
// Value (map) or a Record; both project to the same required-member set,
// so reordering members or adding extra ones (`alg`, `kid`, `key_ops`,
// `ext`, ...) never changes the result.
func ComputeThumbprint(v interface{}) (string, error) {
	var m Value
	switch val := v.(type) {
	case Record:
		m = val.ToValue()
	case Value:
		m = val
	default:
		return "", errors.TypeErr("computeJwkThumbprint: value is not a JWK")
	}

	kty, _ := m["kty"].(string)
	members := requiredMembers(kty)
	if members == nil {
		return "", errors.NotSupportedf("Unsupported key type '%s'", kty)
	}

	required := make(Value, len(members))
	for _, key := range members {
		val, ok := m[key]
		if !ok {
			return "", errors.TypeErrf("missing required member '%s' for kty '%s'", key, kty)
		}
		required[key] = val
	}

	canonical, err := encoding.Canonicalize(required)
	if err != nil {
		return "", errors.Wrap(err, "failed to canonicalize key")
	}

	digest := sha256.Sum256([]byte(canonical))
	return encoding.ToBase64URL(digest[:]), nil
}

// KeyURI returns the stable, content-addressed key identifier for v:
// "urn:jwk:" followed by its RFC 7638 thumbprint.
func KeyURI(v interface{}) (string, error) {
	tp, err := ComputeThumbprint(v)
	if err != nil {
		return "", err
	}
	return "urn:jwk:" + tp, nil
}
