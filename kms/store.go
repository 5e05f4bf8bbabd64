// Package kms implements the key-management layer: a metadata store, a
// private-material store, a local KMS built on both, and the key-manager
// façade that fronts a registry of named KMS instances. The reference
// stores are in-memory, mutex-guarded maps; state lives for the process
// lifetime only, with no persistence layer.
package kms

import (
	"sync"

	"github.com/google/uuid"

	"go.bryk.io/kms/errors"
	"go.bryk.io/kms/jwk"
)

// ManagedKey is the metadata record for a single key: a symmetric secret,
// or one half (public or private) of an asymmetric pair. Spec never
// carries private material (`d` or `k`) for a private-typed record; that
// lives in the private-material store and is referenced by PrivateRef.
type ManagedKey struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"` // "secret" | "private" | "public"
	KMS        string    `json:"kms"`
	Spec       jwk.Value `json:"spec"`
	PrivateRef string    `json:"privateRef,omitempty"`
}

// ManagedKeyPair bundles the two metadata halves of an asymmetric key.
type ManagedKeyPair struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"` // "private,public"
	KMS        string     `json:"kms"`
	PrivateKey ManagedKey `json:"privateKey"`
	PublicKey  ManagedKey `json:"publicKey"`
}

// KmsKeyStore is the metadata store: id -> ManagedKey|ManagedKeyPair.
type KmsKeyStore interface {
	ImportKey(entry interface{}) (string, error)
	GetKey(id string) (interface{}, bool)
	DeleteKey(id string) bool
	ListKeys() []interface{}
}

// PrivateMaterialEntry is a private-material-store record.
type PrivateMaterialEntry struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // always "private"
	Material []byte `json:"-"`
}

// KmsPrivateKeyStore is the private-material store: id ->
// {id, type:'private', material}. ImportKey takes ownership of material's
// backing buffer: the caller's slice is wiped before ImportKey returns.
type KmsPrivateKeyStore interface {
	ImportKey(material []byte) (string, error)
	GetKey(id string) ([]byte, bool)
	DeleteKey(id string) bool
}

// memKeyStore is the in-memory reference KmsKeyStore.
type memKeyStore struct {
	mu    sync.Mutex
	order []string
	byID  map[string]interface{}
}

// NewMemKeyStore returns a fresh in-memory metadata store.
func NewMemKeyStore() KmsKeyStore {
	return &memKeyStore{byID: map[string]interface{}{}}
}

func idOf(entry interface{}) string {
	switch v := entry.(type) {
	case ManagedKey:
		return v.ID
	case ManagedKeyPair:
		return v.ID
	default:
		return ""
	}
}

func withID(entry interface{}, id string) interface{} {
	switch v := entry.(type) {
	case ManagedKey:
		v.ID = id
		return v
	case ManagedKeyPair:
		v.ID = id
		return v
	default:
		return entry
	}
}

func (s *memKeyStore) ImportKey(entry interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := idOf(entry)
	if id == "" {
		id = uuid.NewString()
		entry = withID(entry, id)
	}
	if _, exists := s.byID[id]; exists {
		return "", errors.Operation("Key with ID already exists")
	}
	s.byID[id] = entry
	s.order = append(s.order, id)
	return id, nil
}

func (s *memKeyStore) GetKey(id string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.byID[id]
	return v, ok
}

func (s *memKeyStore) DeleteKey(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *memKeyStore) ListKeys() []interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]interface{}, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// memPrivateKeyStore is the in-memory reference KmsPrivateKeyStore.
type memPrivateKeyStore struct {
	mu   sync.Mutex
	byID map[string][]byte
}

// NewMemPrivateKeyStore returns a fresh in-memory private-material store.
func NewMemPrivateKeyStore() KmsPrivateKeyStore {
	return &memPrivateKeyStore{byID: map[string][]byte{}}
}

func (s *memPrivateKeyStore) ImportKey(material []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	owned := append([]byte{}, material...)
	s.byID[id] = owned

	// Take ownership: the caller's buffer must no longer be usable.
	for i := range material {
		material[i] = 0
	}
	return id, nil
}

func (s *memPrivateKeyStore) GetKey(id string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.byID[id]
	return v, ok
}

func (s *memPrivateKeyStore) DeleteKey(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.byID[id]
	if !ok {
		return false
	}
	for i := range v {
		v[i] = 0
	}
	delete(s.byID, id)
	return true
}
