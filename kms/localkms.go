package kms

import (
	"go.bryk.io/kms/encoding"
	"go.bryk.io/kms/errors"
	"go.bryk.io/kms/jwk"
	"go.bryk.io/kms/providers"
)

// LocalKms is the in-process reference key management system: a metadata
// store plus a private-material store, dispatching operations through the
// providers registry.
type LocalKms struct {
	name        string
	keys        KmsKeyStore
	privateKeys KmsPrivateKeyStore
	algorithms  *providers.Registry
}

// NewLocalKms constructs a LocalKms named name, backed by the given
// stores. A nil store is replaced by a fresh in-memory implementation.
func NewLocalKms(name string, keys KmsKeyStore, privateKeys KmsPrivateKeyStore) *LocalKms {
	if keys == nil {
		keys = NewMemKeyStore()
	}
	if privateKeys == nil {
		privateKeys = NewMemPrivateKeyStore()
	}
	return &LocalKms{
		name:        name,
		keys:        keys,
		privateKeys: privateKeys,
		algorithms:  providers.NewRegistry(),
	}
}

// Name returns the KMS's own registered name.
func (k *LocalKms) Name() string { return k.name }

// SupportedAlgorithms returns the canonical names this KMS instance can
// dispatch to generateKey/sign/verify/encrypt/decrypt/deriveBits.
func (k *LocalKms) SupportedAlgorithms() []string {
	return k.algorithms.SupportedAlgorithms()
}

func (k *LocalKms) getAlgorithm(name string) (providers.Algorithm, error) {
	alg, err := k.algorithms.Get(name)
	if err != nil {
		return nil, errors.NotSupportedf("'%s' is not supported", name)
	}
	return alg, nil
}

// isAsymmetric reports whether alg produces a public/private pair rather
// than a single symmetric secret.
func isAsymmetric(name string) bool {
	switch providers.CanonicalName(name) {
	case "ES256K", "ECDH", "EdDSA":
		return true
	default:
		return false
	}
}

// GenerateKey creates a new key (or key pair) for the named algorithm and
// stores it, returning the stored metadata.
func (k *LocalKms) GenerateKey(opts providers.GenerateKeyOptions) (interface{}, error) {
	alg, err := k.getAlgorithm(opts.Name)
	if err != nil {
		return nil, err
	}
	if !opts.CompressedPublicKey && providers.CanonicalName(opts.Name) == "ES256K" {
		opts.CompressedPublicKey = true
	}

	full, err := alg.GenerateKey(opts)
	if err != nil {
		return nil, err
	}
	full["kms"] = k.name

	if !isAsymmetric(opts.Name) {
		entry := ManagedKey{Type: "secret", KMS: k.name, Spec: full}
		id, err := k.keys.ImportKey(entry)
		if err != nil {
			return nil, err
		}
		entry.ID = id
		return entry, nil
	}

	privMaterial, err := extractPrivateMaterial(full)
	if err != nil {
		return nil, err
	}
	refID, err := k.privateKeys.ImportKey(privMaterial)
	if err != nil {
		return nil, err
	}

	publicSpec := stripPrivateMembers(full)
	pair := ManagedKeyPair{
		Type: "private,public",
		KMS:  k.name,
		PrivateKey: ManagedKey{
			Type:       "private",
			KMS:        k.name,
			Spec:       publicSpec,
			PrivateRef: refID,
		},
		PublicKey: ManagedKey{Type: "public", KMS: k.name, Spec: publicSpec},
	}
	id, err := k.keys.ImportKey(pair)
	if err != nil {
		return nil, err
	}
	pair.ID = id
	pair.PrivateKey.ID = id
	pair.PublicKey.ID = id
	return pair, nil
}

// extractPrivateMaterial pulls the raw private bytes (`d` for asymmetric
// keys) out of a freshly-generated full JWK.
func extractPrivateMaterial(full jwk.Value) ([]byte, error) {
	d, ok := full["d"].(string)
	if !ok {
		return nil, errors.TypeErr("Required property missing: 'material'")
	}
	return encoding.FromBase64URL(d)
}

func stripPrivateMembers(full jwk.Value) jwk.Value {
	out := make(jwk.Value, len(full))
	for k, v := range full {
		if k == "d" {
			continue
		}
		out[k] = v
	}
	return out
}

// ImportKey accepts a caller-constructed ManagedKey or ManagedKeyPair,
// assigns a fresh ID (ignoring any caller-supplied one) and overwrites the
// `kms` tag to this instance's own name.
func (k *LocalKms) ImportKey(entry interface{}) (interface{}, error) {
	switch v := entry.(type) {
	case ManagedKey:
		if v.Type != "public" && v.Type != "private" && v.Type != "secret" {
			return nil, errors.TypeErrf("'%s' is not a valid key type", v.Type)
		}
		v.ID = ""
		v.KMS = k.name
		id, err := k.keys.ImportKey(v)
		if err != nil {
			return nil, err
		}
		v.ID = id
		return v, nil
	case ManagedKeyPair:
		if v.Type != "private,public" {
			return nil, errors.TypeErrf("'%s' is not a valid key pair type", v.Type)
		}
		if err := checkPairConsistency(v); err != nil {
			return nil, err
		}
		v.ID = ""
		v.KMS = k.name
		v.PrivateKey.KMS = k.name
		v.PublicKey.KMS = k.name
		id, err := k.keys.ImportKey(v)
		if err != nil {
			return nil, err
		}
		v.ID = id
		v.PrivateKey.ID = id
		v.PublicKey.ID = id
		return v, nil
	default:
		return nil, errors.TypeErr("Object is not a JSON Web Key")
	}
}

// checkPairConsistency rejects a pair whose halves are swapped (private
// where public is expected, or vice versa) or otherwise mismatched.
func checkPairConsistency(pair ManagedKeyPair) error {
	if pair.PrivateKey.Type != "private" || pair.PublicKey.Type != "public" {
		return errors.Operation("failed due to private and public key mismatch")
	}
	privKty, _ := pair.PrivateKey.Spec["kty"].(string)
	pubKty, _ := pair.PublicKey.Spec["kty"].(string)
	if privKty != pubKty {
		return errors.Operation("failed due to private and public key mismatch")
	}
	return nil
}

// GetKey returns the stored metadata for id, or nil if no such key exists.
func (k *LocalKms) GetKey(id string) interface{} {
	entry, ok := k.keys.GetKey(id)
	if !ok {
		return nil
	}
	return entry
}

// DeleteKey removes the metadata (and any referenced private material)
// for id.
func (k *LocalKms) DeleteKey(id string) bool {
	entry, ok := k.keys.GetKey(id)
	if !ok {
		return false
	}
	if pair, ok := entry.(ManagedKeyPair); ok && pair.PrivateKey.PrivateRef != "" {
		k.privateKeys.DeleteKey(pair.PrivateKey.PrivateRef)
	}
	return k.keys.DeleteKey(id)
}

// resolvePrivateSpec reconstitutes a full JWK (including `d`/`k`) for id,
// fetching its private material when the stored entry references one.
func (k *LocalKms) resolvePrivateSpec(id string) (jwk.Value, error) {
	entry, ok := k.keys.GetKey(id)
	if !ok {
		return nil, errors.Operation("Key not found")
	}

	switch v := entry.(type) {
	case ManagedKey:
		if v.Type == "secret" {
			return v.Spec, nil
		}
		return nil, errors.InvalidAccess("Key type of the provided key must be private")
	case ManagedKeyPair:
		material, ok := k.privateKeys.GetKey(v.PrivateKey.PrivateRef)
		if !ok {
			return nil, errors.TypeErr("Required property missing: 'material'")
		}
		full := stripPrivateMembers(v.PrivateKey.Spec)
		full["d"] = encoding.ToBase64URL(material)
		return full, nil
	default:
		return nil, errors.Operation("Object is not a CryptoKey")
	}
}

// resolvePublicSpec returns the public JWK (no private material) for id.
func (k *LocalKms) resolvePublicSpec(id string) (jwk.Value, error) {
	entry, ok := k.keys.GetKey(id)
	if !ok {
		return nil, errors.Operation("Key not found")
	}
	switch v := entry.(type) {
	case ManagedKey:
		return v.Spec, nil
	case ManagedKeyPair:
		return v.PublicKey.Spec, nil
	default:
		return nil, errors.Operation("Object is not a CryptoKey")
	}
}

// Sign produces a signature for data using the private key stored at id.
func (k *LocalKms) Sign(algName, id string, data []byte) ([]byte, error) {
	alg, err := k.getAlgorithm(algName)
	if err != nil {
		return nil, err
	}
	spec, err := k.resolvePrivateSpec(id)
	if err != nil {
		return nil, err
	}
	return alg.Sign(spec, data)
}

// Verify checks a signature against data using the public key stored at id.
func (k *LocalKms) Verify(algName, id string, signature, data []byte) (bool, error) {
	alg, err := k.getAlgorithm(algName)
	if err != nil {
		return false, err
	}
	spec, err := k.resolvePublicSpec(id)
	if err != nil {
		return false, err
	}
	return alg.Verify(spec, signature, data)
}

// Encrypt encrypts data using the secret key stored at id.
func (k *LocalKms) Encrypt(algName, id string, opts providers.EncryptOptions) ([]byte, error) {
	alg, err := k.getAlgorithm(algName)
	if err != nil {
		return nil, err
	}
	spec, err := k.resolvePrivateSpec(id)
	if err != nil {
		return nil, err
	}
	return alg.Encrypt(spec, opts)
}

// Decrypt decrypts data using the secret key stored at id.
func (k *LocalKms) Decrypt(algName, id string, opts providers.EncryptOptions) ([]byte, error) {
	alg, err := k.getAlgorithm(algName)
	if err != nil {
		return nil, err
	}
	spec, err := k.resolvePrivateSpec(id)
	if err != nil {
		return nil, err
	}
	return alg.Decrypt(spec, opts)
}

// DeriveBits derives key material using the private key stored at id and
// the caller-supplied public key / parameters.
func (k *LocalKms) DeriveBits(algName, id string, opts providers.DeriveBitsOptions) ([]byte, error) {
	alg, err := k.getAlgorithm(algName)
	if err != nil {
		return nil, err
	}
	spec, err := k.resolvePrivateSpec(id)
	if err != nil {
		return nil, err
	}
	return alg.DeriveBits(spec, opts)
}
