package multicodec

// Entry binds a multicodec name to its registered code; header() encodes
// the code as varint header bytes on each call.
type Entry struct {
	Name string
	Code uint64
}

// header returns the varint-encoded prefix for the entry's code.
func (e Entry) header() []byte {
	return encodeVarint(e.Code)
}

// Registered codes for the key types this module cares about.
// https://github.com/multiformats/multicodec/blob/master/table.csv
const (
	codeEd25519Pub    uint64 = 0xed
	codeEd25519Priv   uint64 = 0x1300
	codeX25519Pub     uint64 = 0xec
	codeX25519Priv    uint64 = 0x1302
	codeSecp256k1Pub  uint64 = 0xe7
	codeSecp256k1Priv uint64 = 0x1301
)

var (
	entryEd25519Pub    = Entry{Name: "ed25519-pub", Code: codeEd25519Pub}
	entryEd25519Priv   = Entry{Name: "ed25519-priv", Code: codeEd25519Priv}
	entryX25519Pub     = Entry{Name: "x25519-pub", Code: codeX25519Pub}
	entryX25519Priv    = Entry{Name: "x25519-priv", Code: codeX25519Priv}
	entrySecp256k1Pub  = Entry{Name: "secp256k1-pub", Code: codeSecp256k1Pub}
	entrySecp256k1Priv = Entry{Name: "secp256k1-priv", Code: codeSecp256k1Priv}
)

// byName / byCode index the supported entries for lookups in both
// directions; jwkToMulticodec and multicodecToJose use these.
var byName = map[string]Entry{
	entryEd25519Pub.Name:    entryEd25519Pub,
	entryEd25519Priv.Name:   entryEd25519Priv,
	entryX25519Pub.Name:     entryX25519Pub,
	entryX25519Priv.Name:    entryX25519Priv,
	entrySecp256k1Pub.Name:  entrySecp256k1Pub,
	entrySecp256k1Priv.Name: entrySecp256k1Priv,
}

var byCode = map[uint64]Entry{
	codeEd25519Pub:    entryEd25519Pub,
	codeEd25519Priv:   entryEd25519Priv,
	codeX25519Pub:     entryX25519Pub,
	codeX25519Priv:    entryX25519Priv,
	codeSecp256k1Pub:  entrySecp256k1Pub,
	codeSecp256k1Priv: entrySecp256k1Priv,
}

// joseMapping (indexed by entry name in joseByName) is the (kty, crv) pair
// a multicodec entry represents in JOSE terms, and whether it names a
// private key.
type joseMapping struct {
	kty       string
	crv       string
	isPrivate bool
}

var joseByName = map[string]joseMapping{
	entryEd25519Pub.Name:    {kty: "OKP", crv: "Ed25519", isPrivate: false},
	entryEd25519Priv.Name:   {kty: "OKP", crv: "Ed25519", isPrivate: true},
	entryX25519Pub.Name:     {kty: "OKP", crv: "X25519", isPrivate: false},
	entryX25519Priv.Name:    {kty: "OKP", crv: "X25519", isPrivate: true},
	entrySecp256k1Pub.Name:  {kty: "EC", crv: "secp256k1", isPrivate: false},
	entrySecp256k1Priv.Name: {kty: "EC", crv: "secp256k1", isPrivate: true},
}
