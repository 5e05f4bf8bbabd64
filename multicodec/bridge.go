// Package multicodec binds the JOSE key representation used by the rest of
// this module to Protocol Labs' multicodec/multibase encodings, so public
// keys can be round-tripped to and from a single self-describing string.
package multicodec

import "go.bryk.io/kms/errors"

// Header is the resolved multicodec identity for a (kty, crv) pair: its
// registered name, numeric code, and varint-encoded header bytes.
type Header struct {
	Name string
	Code uint64
}

// Bytes returns the varint-encoded header, ready to prefix key material.
func (h Header) Bytes() []byte {
	return encodeVarint(h.Code)
}

// lookupArgs is the "name XOR code" selector resolveEntry takes (used by
// MulticodecToJose and the JwkToMulticodecBy* helpers): exactly one of the
// two must be set.
type lookupArgs struct {
	Name string
	Code *uint64
}

func resolveEntry(args lookupArgs) (Entry, error) {
	hasName := args.Name != ""
	hasCode := args.Code != nil
	if hasName == hasCode {
		return Entry{}, errors.TypeErr("Either 'name' or 'code' must be defined, but not both.")
	}
	if hasName {
		e, ok := byName[args.Name]
		if !ok {
			return Entry{}, errors.NotSupportedf("Unsupported Multicodec")
		}
		return e, nil
	}
	e, ok := byCode[*args.Code]
	if !ok {
		return Entry{}, errors.NotSupportedf("Unsupported Multicodec")
	}
	return e, nil
}

// JwkToMulticodec maps a JWK's (kty, crv), and whether it carries a private
// `d` member, to its multicodec name and code.
func JwkToMulticodec(kty, crv string, isPrivate bool) (Header, error) {
	for name, m := range joseByName {
		if m.kty == kty && m.crv == crv && m.isPrivate == isPrivate {
			e := byName[name]
			return Header{Name: e.Name, Code: e.Code}, nil
		}
	}
	if kty != "EC" && kty != "OKP" {
		return Header{}, errors.NotSupportedf("Unsupported public key type")
	}
	return Header{}, errors.NotSupportedf("Unsupported public key curve")
}

// JwkToMulticodecByName resolves a multicodec Header by exact entry name
// (e.g. "ed25519-pub"), per the name-XOR-code lookup invariant.
func JwkToMulticodecByName(name string) (Header, error) {
	e, err := resolveEntry(lookupArgs{Name: name})
	if err != nil {
		return Header{}, err
	}
	return Header{Name: e.Name, Code: e.Code}, nil
}

// JwkToMulticodecByCode resolves a multicodec Header by numeric code, per
// the name-XOR-code lookup invariant.
func JwkToMulticodecByCode(code uint64) (Header, error) {
	e, err := resolveEntry(lookupArgs{Code: &code})
	if err != nil {
		return Header{}, err
	}
	return Header{Name: e.Name, Code: e.Code}, nil
}

// MulticodecToJose returns a bare JWK skeleton (kty, crv and empty x, and y
// or d where the key shape requires them) for the multicodec entry named by
// exactly one of name or code. Setting both, or neither, fails with a
// TypeErr; MulticodecToJoseByName / MulticodecToJoseByCode always set
// exactly one.
func MulticodecToJose(args lookupArgs) (map[string]interface{}, error) {
	e, err := resolveEntry(args)
	if err != nil {
		if errors.IsTypeErr(err) {
			return nil, err
		}
		return nil, errors.NotSupportedf("Unsupported Multicodec to JOSE conversion")
	}
	mapping, ok := joseByName[e.Name]
	if !ok {
		return nil, errors.NotSupportedf("Unsupported Multicodec to JOSE conversion")
	}
	skeleton := map[string]interface{}{
		"kty": mapping.kty,
		"crv": mapping.crv,
		"x":   "",
	}
	if mapping.kty == "EC" {
		skeleton["y"] = ""
	}
	if mapping.isPrivate {
		skeleton["d"] = ""
	}
	return skeleton, nil
}

// MulticodecToJoseByName resolves the bare JWK skeleton for a multicodec
// entry given by name (e.g. "secp256k1-pub").
func MulticodecToJoseByName(name string) (map[string]interface{}, error) {
	return MulticodecToJose(lookupArgs{Name: name})
}

// MulticodecToJoseByCode resolves the bare JWK skeleton for a multicodec
// entry given by its numeric code.
func MulticodecToJoseByCode(code uint64) (map[string]interface{}, error) {
	return MulticodecToJose(lookupArgs{Code: &code})
}
