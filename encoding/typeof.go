package encoding

// Type enumerates the coarse-grained value kinds universalTypeOf
// distinguishes between: the small set a JSON/JWK boundary cares about.
// Go-only kinds (channels, funcs, complex numbers, ...) are not part of
// the contract and fall back to Object.
type Type string

const (
	// TypeArray identifies a slice value (any element type).
	TypeArray Type = "Array"
	// TypeArrayBuffer identifies a raw byte buffer ([]byte / [N]byte).
	TypeArrayBuffer Type = "ArrayBuffer"
	// TypeBoolean identifies a bool value.
	TypeBoolean Type = "Boolean"
	// TypeNumber identifies any of the numeric kinds.
	TypeNumber Type = "Number"
	// TypeNull identifies an explicit nil interface or nil pointer.
	TypeNull Type = "Null"
	// TypeObject identifies a map, struct, or otherwise unclassified value.
	TypeObject Type = "Object"
	// TypeString identifies a string value.
	TypeString Type = "String"
	// TypeUint8Array identifies a byte slice specifically; returned instead
	// of TypeArrayBuffer when the source value is exactly `[]byte`.
	TypeUint8Array Type = "Uint8Array"
	// TypeUndefined identifies a value that carries no information at all,
	// i.e. an untyped `nil` passed as `interface{}`.
	TypeUndefined Type = "Undefined"
)

// UniversalTypeOf classifies v into one of the Type constants. `BigInt`
// and the `Set`/`Map` collection types from the original JS-oriented
// contract have no direct Go analogue and no Type constant of their own.
func UniversalTypeOf(v interface{}) Type {
	if v == nil {
		return TypeUndefined
	}
	switch val := v.(type) {
	case []byte:
		return TypeUint8Array
	case [16]byte, [24]byte, [32]byte:
		return TypeArrayBuffer
	case bool:
		return TypeBoolean
	case string:
		return TypeString
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return TypeNumber
	default:
		return reflectClassify(val)
	}
}
