package auth

import "errors"

// ErrKeyNotFound is returned when no API key is stored
var ErrKeyNotFound = errors.New("API key not found")

// Store persists the LangSmith API key
type Store interface {
	Get() (string, error)
	Set(key string) error
	Delete() error
}

// ResolveAPIKey returns the LangSmith API key, preferring the environment
// over the system keyring. Environment wins so CI and one-off overrides
// don't require touching the stored key.
func ResolveAPIKey() (string, error) {
	if key, err := NewEnvironmentStore().Get(); err == nil {
		return key, nil
	}
	return NewKeyringStore().Get()
}
