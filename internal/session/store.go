// Package session owns the authentication truth of the client: the
// persisted session record, the in-memory state container every screen
// observes, and the manager that reconciles API results into both.
package session

import (
	"encoding/json"
	"sync"

	"github.com/99designs/keyring"

	"github.com/campuskit/campusctl/internal/errors"
	"github.com/campuskit/campusctl/internal/user"
)

// sessionKey is the single well-known key holding the serialized session
const sessionKey = "user"

// ServiceName identifies this client to the platform keychain
const ServiceName = "campusctl"

// ErrNoSession is the explicit "not found" result from Load
var ErrNoSession = errors.New(errors.ErrCodeStorage, "no stored session")

// PersistedStore durably holds the last known session for app-restart
// continuity. All operations may fail when the underlying storage is
// unavailable; callers fall back to an unauthenticated state instead of
// treating that as fatal.
type PersistedStore interface {
	// Save persists the record, overwriting any prior value
	Save(rec user.Record) error
	// Load returns the saved record, or ErrNoSession if none exists
	Load() (user.Record, error)
	// Clear deletes the record; clearing an empty store is not an error
	Clear() error
}

// KeyringStore persists the session in the platform keychain, with an
// encrypted file fallback where no keychain service is available.
// A Clear whose delete fails leaves the store logically empty: the record
// may physically survive in the keychain, but Load reports ErrNoSession
// until the next Save.
type KeyringStore struct {
	ring keyring.Keyring

	mu      sync.Mutex
	cleared bool
}

// OpenKeyringStore opens the platform keychain for this client
func OpenKeyringStore(fileDir string) (*KeyringStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:              ServiceName,
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(ServiceName),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, errors.NewStorageError("open", err)
	}
	return &KeyringStore{ring: ring}, nil
}

// NewKeyringStore wraps an already-open keyring; tests pass an in-memory one
func NewKeyringStore(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

// Save persists the serialized record under the fixed session key
func (s *KeyringStore) Save(rec user.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.NewStorageError("write", err)
	}

	err = s.ring.Set(keyring.Item{
		Key:   sessionKey,
		Data:  data,
		Label: "campusctl session",
	})
	if err != nil {
		return errors.NewStorageError("write", err)
	}

	s.mu.Lock()
	s.cleared = false
	s.mu.Unlock()
	return nil
}

// Load returns the previously saved record or ErrNoSession
func (s *KeyringStore) Load() (user.Record, error) {
	s.mu.Lock()
	cleared := s.cleared
	s.mu.Unlock()
	if cleared {
		return user.Record{}, ErrNoSession
	}

	item, err := s.ring.Get(sessionKey)
	if err == keyring.ErrKeyNotFound {
		return user.Record{}, ErrNoSession
	}
	if err != nil {
		return user.Record{}, errors.NewStorageError("read", err)
	}

	var rec user.Record
	if err := json.Unmarshal(item.Data, &rec); err != nil {
		return user.Record{}, errors.NewStorageError("read", err)
	}
	return rec, nil
}

// Clear deletes the session key. Even when the delete fails the store is
// marked empty, so subsequent Loads report ErrNoSession rather than
// resurrecting a signed-out session.
func (s *KeyringStore) Clear() error {
	s.mu.Lock()
	s.cleared = true
	s.mu.Unlock()

	err := s.ring.Remove(sessionKey)
	if err == nil || err == keyring.ErrKeyNotFound {
		return nil
	}
	return errors.NewStorageError("delete", err)
}
