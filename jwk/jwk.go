/*
Package jwk implements the JSON Web Key value type (RFC 7517), its type
predicates, and RFC 7638 thumbprint computation.

A JWK is modeled here as a plain map (`jwk.Value`, an alias for
`map[string]interface{}`) rather than a closed struct: the predicates in
predicates.go are the source of truth for "is this a valid EC/OKP/oct
key" (polymorphic validation over an arbitrary object, not a typed
union). `Record` is the typed, JSON-tag-carrying projection used once a
Value has been validated and is ready to travel on the wire or be handed
to a primitive.
*/
package jwk

// Value is a decoded JWK: either freshly unmarshaled JSON or a map built
// programmatically. All the type predicates in predicates.go operate
// directly on Value so callers don't need to round-trip through Record
// just to ask "is this an EC private key".
type Value = map[string]interface{}

// Record is the typed, ordered-member view of a JWK used once a Value has
// passed its predicate check. Its JSON tags define the on-wire member
// names and omitempty behavior required by §6 ("JWK on-wire form").
type Record struct {
	KeyType string   `json:"kty"`
	Crv     string   `json:"crv,omitempty"`
	X       string   `json:"x,omitempty"`
	Y       string   `json:"y,omitempty"`
	D       string   `json:"d,omitempty"`
	K       string   `json:"k,omitempty"`
	N       string   `json:"n,omitempty"`
	E       string   `json:"e,omitempty"`
	Alg     string   `json:"alg,omitempty"`
	KeyID   string   `json:"kid,omitempty"`
	KeyOps  []string `json:"key_ops,omitempty"`
	Use     string   `json:"use,omitempty"`
	Ext     *bool    `json:"ext,omitempty"`
}

// ToValue projects a Record into the generic Value map the predicates and
// ComputeThumbprint operate on. Empty fields (the Go zero value for a
// member that was never set) are omitted, mirroring `omitempty` on the
// wire.
func (r Record) ToValue() Value {
	v := Value{"kty": r.KeyType}
	setIfNotEmpty(v, "crv", r.Crv)
	setIfNotEmpty(v, "x", r.X)
	setIfNotEmpty(v, "y", r.Y)
	setIfNotEmpty(v, "d", r.D)
	setIfNotEmpty(v, "k", r.K)
	setIfNotEmpty(v, "n", r.N)
	setIfNotEmpty(v, "e", r.E)
	setIfNotEmpty(v, "alg", r.Alg)
	setIfNotEmpty(v, "kid", r.KeyID)
	setIfNotEmpty(v, "use", r.Use)
	if len(r.KeyOps) > 0 {
		ops := make([]interface{}, len(r.KeyOps))
		for i, op := range r.KeyOps {
			ops[i] = op
		}
		v["key_ops"] = ops
	}
	if r.Ext != nil {
		v["ext"] = *r.Ext
	}
	return v
}

func setIfNotEmpty(v Value, key, val string) {
	if val != "" {
		v[key] = val
	}
}

// FromValue projects a generic Value map back into a Record. Unknown
// extra members are ignored; this is only meant to be called after the
// appropriate `Is*Jwk` predicate confirmed the shape.
func FromValue(v Value) Record {
	r := Record{
		KeyType: str(v, "kty"),
		Crv:     str(v, "crv"),
		X:       str(v, "x"),
		Y:       str(v, "y"),
		D:       str(v, "d"),
		K:       str(v, "k"),
		N:       str(v, "n"),
		E:       str(v, "e"),
		Alg:     str(v, "alg"),
		KeyID:   str(v, "kid"),
		Use:     str(v, "use"),
	}
	if ops, ok := v["key_ops"].([]interface{}); ok {
		r.KeyOps = make([]string, 0, len(ops))
		for _, op := range ops {
			if s, ok := op.(string); ok {
				r.KeyOps = append(r.KeyOps, s)
			}
		}
	}
	if ext, ok := v["ext"].(bool); ok {
		r.Ext = &ext
	}
	return r
}

func str(v Value, key string) string {
	if s, ok := v[key].(string); ok {
		return s
	}
	return ""
}

// Set is a collection of JWKs, per RFC 7517 §5.
type Set struct {
	Keys []Record `json:"keys"`
}
