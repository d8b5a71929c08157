package memory

import (
	"sync"

	"github.com/chek-project/chek-kma/pkg/domain/interfaces"
)

// SessionStorage is an in-memory session-scoped key/value store
type SessionStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

var _ interfaces.SessionStorage = &SessionStorage{}

func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		items: make(map[string]string),
	}
}

func (s *SessionStorage) GetItem(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *SessionStorage) SetItem(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

func (s *SessionStorage) RemoveItem(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

func (s *SessionStorage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]string)
}
