package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "moltscraper"
	keyringUser    = "langsmith-api-key"
)

// KeyringStore persists the API key in the system keychain
type KeyringStore struct{}

// NewKeyringStore creates a keychain-backed store
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Get() (string, error) {
	key, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return key, nil
}

func (s *KeyringStore) Set(key string) error {
	return keyring.Set(keyringService, keyringUser, key)
}

func (s *KeyringStore) Delete() error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
