package flash

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// MemoryStore keeps messages in process memory keyed by flash session.
// It is meant for tests and single-instance development servers.
type MemoryStore struct {
	mu   sync.Mutex
	msgs map[string][]Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{msgs: map[string][]Message{}}
}

func (s *MemoryStore) Add(c echo.Context, m Message) error {
	id := sessionID(c, time.Hour)
	s.mu.Lock()
	s.msgs[id] = append(s.msgs[id], m)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Pop(c echo.Context) ([]Message, error) {
	id := sessionID(c, time.Hour)
	s.mu.Lock()
	out := s.msgs[id]
	delete(s.msgs, id)
	s.mu.Unlock()
	return out, nil
}
