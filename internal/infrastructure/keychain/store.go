// Package keychain keeps the generator API credential in the OS credential store,
// so it does not have to live in a shell profile.
package keychain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/99designs/keyring"

	"github.com/doeshing/clio-go/internal/ports"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "clio"

// ErrUnavailable means no usable credential backend exists on this host.
var ErrUnavailable = errors.New("secure storage not available on this system")

// Store wraps a lazily opened keyring.
type Store struct {
	mu     sync.Mutex
	ring   keyring.Keyring
	opener func() (keyring.Keyring, error)
}

// NewStore returns a store backed by the native OS keyring.
func NewStore() *Store {
	return &Store{opener: openRing}
}

// NewStoreWithRing returns a store over an already opened keyring.
func NewStoreWithRing(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Get implements ports.CredentialSource. A missing key yields "" and no error.
func (s *Store) Get(name string) (string, error) {
	ring, err := s.open()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(name)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s from keychain: %w", name, err)
	}
	return string(item.Data), nil
}

// Set stores value under name.
func (s *Store) Set(name, value string) error {
	ring, err := s.open()
	if err != nil {
		return err
	}
	return ring.Set(keyring.Item{
		Key:   name,
		Data:  []byte(value),
		Label: "clio generator credential",
	})
}

// Remove deletes name. Removing a missing key is not an error.
func (s *Store) Remove(name string) error {
	ring, err := s.open()
	if err != nil {
		return err
	}
	if err := ring.Remove(name); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("remove %s from keychain: %w", name, err)
	}
	return nil
}

func (s *Store) open() (keyring.Keyring, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ring != nil {
		return s.ring, nil
	}
	if s.opener == nil {
		return nil, ErrUnavailable
	}
	ring, err := s.opener()
	if err != nil {
		return nil, err
	}
	s.ring = ring
	return ring, nil
}

// openRing opens the OS keyring using native backends only; the encrypted
// file backend would prompt for a passphrase mid-workflow.
func openRing() (keyring.Keyring, error) {
	var allowed []keyring.BackendType
	for _, backend := range keyring.AvailableBackends() {
		if backend == keyring.FileBackend {
			continue
		}
		allowed = append(allowed, backend)
	}
	if len(allowed) == 0 {
		return nil, ErrUnavailable
	}
	ring, err := keyring.Open(keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return ring, nil
}

var _ ports.CredentialSource = (*Store)(nil)
