package auth

// MockStore is an in-memory Store for tests
type MockStore struct {
	key string
}

// NewMockStore creates a mock store, optionally pre-seeded with a key
func NewMockStore(key string) *MockStore {
	return &MockStore{key: key}
}

func (s *MockStore) Get() (string, error) {
	if s.key == "" {
		return "", ErrKeyNotFound
	}
	return s.key, nil
}

func (s *MockStore) Set(key string) error {
	s.key = key
	return nil
}

func (s *MockStore) Delete() error {
	s.key = ""
	return nil
}
