package cliorg

import (
	"context"
	"errors"

	"github.com/zalando/go-keyring"
)

// CredentialStore persists org credential records keyed by username.
type CredentialStore interface {
	Save(ctx context.Context, username string, record []byte) error
	Load(ctx context.Context, username string) ([]byte, error)
	Delete(ctx context.Context, username string) error
}

// KeychainStore persists credential records using the OS keychain (macOS
// Keychain, Windows Credential Manager, Linux Secret Service), one keychain
// account per username.
type KeychainStore struct {
	serviceName string
}

// NewKeychainStore creates a KeychainStore that stores records under the
// given application name as the keychain service name.
func NewKeychainStore(appName string) *KeychainStore {
	return &KeychainStore{serviceName: appName}
}

// Save persists a credential record for username.
func (s *KeychainStore) Save(_ context.Context, username string, record []byte) error {
	return keyring.Set(s.serviceName, username, string(record))
}

// Load retrieves the credential record for username.
// Returns ErrNoAuthInfo if nothing is stored.
func (s *KeychainStore) Load(_ context.Context, username string) ([]byte, error) {
	secret, err := keyring.Get(s.serviceName, username)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoAuthInfo
		}
		return nil, err
	}
	return []byte(secret), nil
}

// Delete removes the credential record for username.
// Returns ErrNoAuthInfo if nothing is stored.
func (s *KeychainStore) Delete(_ context.Context, username string) error {
	err := keyring.Delete(s.serviceName, username)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNoAuthInfo
		}
		return err
	}
	return nil
}
