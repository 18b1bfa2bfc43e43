package tabs

import (
	"context"
	"sync"
)

// MemoryStore implements Store using in-process memory. State does not
// survive a server restart; it exists for tests and single-node setups.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new memory store instance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (s *MemoryStore) Load(ctx context.Context, user string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[user]
	if !ok {
		return &State{}, nil
	}
	cp := st
	cp.Tabs = make([]Tab, len(st.Tabs))
	copy(cp.Tabs, st.Tabs)
	return &cp, nil
}

func (s *MemoryStore) Save(ctx context.Context, user string, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *st
	cp.Tabs = make([]Tab, len(st.Tabs))
	copy(cp.Tabs, st.Tabs)
	s.states[user] = cp
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, user)
	return nil
}
