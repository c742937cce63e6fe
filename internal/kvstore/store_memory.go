package kvstore

import (
	"context"
	"sync"

	id "anamnesis/pkg/domain"
)

type memoryKey struct {
	user id.UserID
	key  Key
}

// InMemoryStore keeps values in process. Used for tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[memoryKey]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{values: make(map[memoryKey]string)}
}

func (s *InMemoryStore) Get(_ context.Context, userID id.UserID, key Key) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[memoryKey{userID, key}]
	return v, ok, nil
}

func (s *InMemoryStore) Set(_ context.Context, userID id.UserID, key Key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[memoryKey{userID, key}] = value
	return nil
}

func (s *InMemoryStore) Remove(_ context.Context, userID id.UserID, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, memoryKey{userID, key})
	return nil
}
