package providers

import "go.bryk.io/kms/errors"

// Registry resolves a canonical algorithm name to its provider instance,
// mirroring the KMS's internal #getAlgorithm lookup table.
type Registry struct {
	byName map[string]Algorithm
}

// NewRegistry returns a registry pre-populated with every provider this
// module implements.
func NewRegistry() *Registry {
	r := &Registry{byName: map[string]Algorithm{}}
	for _, alg := range []Algorithm{
		NewES256K(),
		NewEdDSA(),
		NewECDH(),
		NewAESCTR(128),
		NewAESCTR(192),
		NewAESCTR(256),
		NewPBKDF2(),
	} {
		for name := range alg.Names() {
			r.byName[name] = alg
		}
	}
	return r
}

// Get resolves name (folded to canonical casing) to its provider.
func (r *Registry) Get(name string) (Algorithm, error) {
	alg, ok := r.byName[CanonicalName(name)]
	if !ok {
		return nil, errors.NotSupportedf("'%s' is not supported", name)
	}
	return alg, nil
}

// SupportedAlgorithms returns the canonical names of every registered
// algorithm, insertion order not guaranteed.
func (r *Registry) SupportedAlgorithms() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}
