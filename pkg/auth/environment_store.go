package auth

import "os"

// EnvAPIKey is the environment variable holding the LangSmith API key
const EnvAPIKey = "LANGSMITH_API_KEY"

// EnvironmentStore reads the API key from the environment. It is
// read-only: Set and Delete report that the key is managed externally.
type EnvironmentStore struct{}

// NewEnvironmentStore creates an environment-backed store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

func (s *EnvironmentStore) Get() (string, error) {
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key, nil
	}
	return "", ErrKeyNotFound
}

func (s *EnvironmentStore) Set(key string) error {
	return os.Setenv(EnvAPIKey, key)
}

func (s *EnvironmentStore) Delete() error {
	return os.Unsetenv(EnvAPIKey)
}
