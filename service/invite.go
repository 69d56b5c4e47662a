package service

import (
	"strings"
	"sync"

	"paperdoll_backend/model"
)

// InviteService holds the pending invite names for the lifetime of the
// process. Nothing is persisted; a restart empties the queue. The mutex only
// makes each individual operation atomic, there is no cross-call ordering.
type InviteService struct {
	mu    sync.Mutex
	names []string
}

func NewInviteService() *InviteService {
	return &InviteService{}
}

func (s *InviteService) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Add appends the trimmed name in insertion order. Names of two characters or
// fewer and exact duplicates are rejected with model.ErrValidation. The
// updated list is returned so the handler can echo it back.
func (s *InviteService) Add(name string) ([]string, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) <= 2 {
		return nil, model.ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.names {
		if existing == trimmed {
			return nil, model.ErrValidation
		}
	}

	s.names = append(s.names, trimmed)

	out := make([]string, len(s.names))
	copy(out, s.names)
	return out, nil
}

func (s *InviteService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.names = nil
}
