package encoding

import (
	"fmt"
	"sort"
	"strings"
)

// Canonicalize produces a deterministic JSON rendering of src: object keys
// are sorted lexicographically by UTF-16 code unit (matching Go's default
// string ordering for the ASCII-range key names JWK/JOSE use), `nil`/
// "undefined" values are dropped from objects, and array order is
// preserved. This is the function RFC-7638 thumbprints and key URIs are
// built on (see jwk.ComputeThumbprint).
//
// Supported source shapes: map[string]interface{}, []interface{},
// []string, string, bool, any numeric kind, and nil. Struct values should
// be converted to one of the above (e.g. via a map built from required
// fields) before calling Canonicalize; this function does not use
// reflection-based struct traversal so field ordering is always explicit
// at the call site.
func Canonicalize(src interface{}) (string, error) {
	var sb strings.Builder
	if err := writeCanonical(&sb, src); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeCanonical(sb *strings.Builder, v interface{}) error {
	if v == nil {
		sb.WriteString("null")
		return nil
	}
	switch val := v.(type) {
	case map[string]interface{}:
		return writeCanonicalObject(sb, val)
	case map[string]string:
		obj := make(map[string]interface{}, len(val))
		for k, s := range val {
			obj[k] = s
		}
		return writeCanonicalObject(sb, obj)
	case []interface{}:
		return writeCanonicalArray(sb, val)
	case []string:
		arr := make([]interface{}, len(val))
		for i, s := range val {
			arr[i] = s
		}
		return writeCanonicalArray(sb, arr)
	case string:
		sb.WriteString(quote(val))
		return nil
	case bool:
		if val {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
		return nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		fmt.Fprintf(sb, "%v", val)
		return nil
	default:
		return fmt.Errorf("canonicalize: unsupported value type %T", v)
	}
}

func writeCanonicalObject(sb *strings.Builder, obj map[string]interface{}) error {
	keys := make([]string, 0, len(obj))
	for k, v := range obj {
		// "undefined" values (Go nil) are dropped, matching the JS
		// JSON.stringify behaviour the original contract relies on.
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(quote(k))
		sb.WriteByte(':')
		if err := writeCanonical(sb, obj[k]); err != nil {
			return err
		}
	}
	sb.WriteByte('}')
	return nil
}

func writeCanonicalArray(sb *strings.Builder, arr []interface{}) error {
	sb.WriteByte('[')
	for i, v := range arr {
		if i > 0 {
			sb.WriteByte(',')
		}
		if err := writeCanonical(sb, v); err != nil {
			return err
		}
	}
	sb.WriteByte(']')
	return nil
}

// quote renders a string as a JSON string literal. JWK/JOSE canonical
// members are restricted to base64url alphabet, curve names and algorithm
// identifiers, none of which require escaping beyond the quote and
// backslash characters, but both are handled for safety.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
