package kms

import (
	"strings"

	"go.bryk.io/kms/errors"
	"go.bryk.io/kms/jwk"
	"go.bryk.io/kms/providers"
)

const defaultKmsName = "local"

// KeyManager is the public façade: a registry of named KMS instances plus
// key-reference resolution (by store id or "urn:jwk:" URI). It never
// exposes its internal metadata store directly, only through its method
// surface.
type KeyManager struct {
	kmsRegistry map[string]*LocalKms
	order       []string
}

// Config bundles KeyManager construction inputs. Store is the metadata
// store backing the default KMS when Kms is not supplied; Store is ignored
// when Kms is supplied, and leaving both nil is a construction error.
type Config struct {
	Store KmsKeyStore
	Kms   *LocalKms
}

// NewKeyManager constructs a façade. Omitting both Store and Kms is a
// construction error; supplying Kms selects that KMS outright, otherwise
// a default KMS named "local" is built on Store.
func NewKeyManager(cfg Config) (*KeyManager, error) {
	km := &KeyManager{kmsRegistry: map[string]*LocalKms{}}

	kms := cfg.Kms
	if kms == nil {
		if cfg.Store == nil {
			return nil, errors.TypeErr("Required parameter was missing: 'store'")
		}
		kms = NewLocalKms(defaultKmsName, cfg.Store, nil)
	}
	km.register(kms)
	return km, nil
}

func (km *KeyManager) register(k *LocalKms) {
	km.kmsRegistry[k.Name()] = k
	km.order = append(km.order, k.Name())
}

// RegisterKms adds an additional named KMS to the façade's registry.
func (km *KeyManager) RegisterKms(k *LocalKms) {
	km.register(k)
}

// ListKms returns the set of registered KMS names.
func (km *KeyManager) ListKms() []string {
	out := make([]string, len(km.order))
	copy(out, km.order)
	return out
}

// getKms resolves the target KMS: an explicit name takes precedence; with
// none given, exactly one registered KMS is used by default.
func (km *KeyManager) getKms(name string) (*LocalKms, error) {
	if name != "" {
		k, ok := km.kmsRegistry[name]
		if !ok {
			return nil, errors.NotSupported("Unknown key management system")
		}
		return k, nil
	}
	if len(km.kmsRegistry) == 1 {
		return km.kmsRegistry[km.order[0]], nil
	}
	return nil, errors.NotSupported("Unknown key management system")
}

// resolveKeyRef accepts either a raw store id or a "urn:jwk:" key URI and
// returns the underlying store id. A URI is resolved by scanning the
// target KMS's metadata for an entry whose public spec yields the same key
// URI; this module's stores key entries by store id, not by URI, so URI
// resolution is a lookup convenience rather than a primary key.
func (km *KeyManager) resolveKeyRef(kmsName, ref string) (*LocalKms, string, error) {
	k, err := km.getKms(kmsName)
	if err != nil {
		return nil, "", err
	}
	if !strings.HasPrefix(ref, "urn:jwk:") {
		return k, ref, nil
	}
	for _, id := range kmsIDs(k) {
		entry := k.GetKey(id)
		spec, err := specOf(entry)
		if err != nil {
			continue
		}
		uri, err := jwk.KeyURI(spec)
		if err == nil && uri == ref {
			return k, id, nil
		}
	}
	return nil, "", errors.Operation("Key not found")
}

func kmsIDs(k *LocalKms) []string {
	entries := k.keys.ListKeys()
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		switch v := e.(type) {
		case ManagedKey:
			ids = append(ids, v.ID)
		case ManagedKeyPair:
			ids = append(ids, v.ID)
		}
	}
	return ids
}

func specOf(entry interface{}) (jwk.Value, error) {
	switch v := entry.(type) {
	case ManagedKey:
		return v.Spec, nil
	case ManagedKeyPair:
		return v.PublicKey.Spec, nil
	default:
		return nil, errors.Operation("Object is not a JSON Web Key")
	}
}

// OperationOptions bundles the common `kms` selector alongside the
// algorithm-specific options every façade method also takes.
type OperationOptions struct {
	Kms string
}

// GenerateKey creates a new key (or key pair) in the target KMS.
func (km *KeyManager) GenerateKey(opOpts OperationOptions, opts providers.GenerateKeyOptions) (interface{}, error) {
	k, err := km.getKms(opOpts.Kms)
	if err != nil {
		return nil, err
	}
	return k.GenerateKey(opts)
}

// ImportKey imports a caller-constructed key/key pair into the target KMS.
func (km *KeyManager) ImportKey(opOpts OperationOptions, entry interface{}) (interface{}, error) {
	k, err := km.getKms(opOpts.Kms)
	if err != nil {
		return nil, err
	}
	return k.ImportKey(entry)
}

// GetKey returns the stored metadata for keyRef (id or key URI), or nil.
func (km *KeyManager) GetKey(opOpts OperationOptions, keyRef string) interface{} {
	k, id, err := km.resolveKeyRef(opOpts.Kms, keyRef)
	if err != nil {
		return nil
	}
	return k.GetKey(id)
}

// Sign produces a signature for data using keyRef.
func (km *KeyManager) Sign(opOpts OperationOptions, algName, keyRef string, data []byte) ([]byte, error) {
	k, id, err := km.resolveKeyRef(opOpts.Kms, keyRef)
	if err != nil {
		return nil, err
	}
	return k.Sign(algName, id, data)
}

// Verify checks a signature using keyRef.
func (km *KeyManager) Verify(opOpts OperationOptions, algName, keyRef string, signature, data []byte) (bool, error) {
	k, id, err := km.resolveKeyRef(opOpts.Kms, keyRef)
	if err != nil {
		return false, err
	}
	return k.Verify(algName, id, signature, data)
}

// Encrypt encrypts data using keyRef.
func (km *KeyManager) Encrypt(opOpts OperationOptions, algName, keyRef string, opts providers.EncryptOptions) ([]byte, error) {
	k, id, err := km.resolveKeyRef(opOpts.Kms, keyRef)
	if err != nil {
		return nil, err
	}
	return k.Encrypt(algName, id, opts)
}

// Decrypt decrypts data using keyRef.
func (km *KeyManager) Decrypt(opOpts OperationOptions, algName, keyRef string, opts providers.EncryptOptions) ([]byte, error) {
	k, id, err := km.resolveKeyRef(opOpts.Kms, keyRef)
	if err != nil {
		return nil, err
	}
	return k.Decrypt(algName, id, opts)
}

// DeriveBits derives key material from baseKeyRef, defaulting Length to
// 32 bytes (256 bits) for ECDH when unset.
func (km *KeyManager) DeriveBits(opOpts OperationOptions, algName, baseKeyRef string, opts providers.DeriveBitsOptions) ([]byte, error) {
	k, id, err := km.resolveKeyRef(opOpts.Kms, baseKeyRef)
	if err != nil {
		return nil, err
	}
	if opts.Length == nil && providers.CanonicalName(algName) == "ECDH" {
		defaultLen := 256
		opts.Length = &defaultLen
	}
	return k.DeriveBits(algName, id, opts)
}

// DeleteKey removes any private material keyRef references and then its
// metadata: private material first, metadata last. No rollback is
// performed if the metadata delete fails after the private material is
// gone.
func (km *KeyManager) DeleteKey(opOpts OperationOptions, keyRef string) bool {
	k, id, err := km.resolveKeyRef(opOpts.Kms, keyRef)
	if err != nil {
		return false
	}
	return k.DeleteKey(id)
}

// ExportPublicSet collects the public half of every key pair registered
// across every KMS named in kmsNames (all registered KMS instances when
// kmsNames is empty) into a single RFC 7517 key set. Standalone ManagedKey
// entries (secret keys, and imported single public or private keys) are
// not included.
func (km *KeyManager) ExportPublicSet(kmsNames ...string) (jwk.Set, error) {
	names := kmsNames
	if len(names) == 0 {
		names = km.order
	}
	set := jwk.Set{Keys: []jwk.Record{}}
	for _, name := range names {
		k, ok := km.kmsRegistry[name]
		if !ok {
			return jwk.Set{}, errors.NotSupported("Unknown key management system")
		}
		for _, entry := range k.keys.ListKeys() {
			switch v := entry.(type) {
			case ManagedKeyPair:
				set.Keys = append(set.Keys, jwk.FromValue(v.PublicKey.Spec))
			}
		}
	}
	return set, nil
}
