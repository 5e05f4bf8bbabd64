package multicodec

import (
	"github.com/mr-tron/base58"

	"go.bryk.io/kms/encoding"
	"go.bryk.io/kms/errors"
)

// PublicKeyToMultibaseId builds a multibase identifier for a public JWK:
// the multicodec header for its (kty, crv) pair, followed by the raw key
// bytes decoded from `x` (with `y` appended for secp256k1-pub, whose point
// is carried as separate x/y coordinates rather than a single octet
// string), base58-btc encoded and prefixed with the "z" multibase marker.
func PublicKeyToMultibaseId(kty, crv string, x, y string) (string, error) {
	header, err := JwkToMulticodec(kty, crv, false)
	if err != nil {
		return "", err
	}

	xBytes, err := encoding.FromBase64URL(x)
	if err != nil {
		return "", errors.Wrap(err, "invalid 'x' member")
	}

	keyBytes := xBytes
	if header.Name == entrySecp256k1Pub.Name {
		yBytes, err := encoding.FromBase64URL(y)
		if err != nil {
			return "", errors.Wrap(err, "invalid 'y' member")
		}
		keyBytes = append(append([]byte{}, xBytes...), yBytes...)
	}

	buf := append(header.Bytes(), keyBytes...)
	return "z" + base58.Encode(buf), nil
}
