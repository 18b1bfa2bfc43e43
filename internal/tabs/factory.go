package tabs

import (
	"fmt"
	"sync"

	"context"

	"github.com/harnesslab/wiremes/internal/common/config"

	"go.uber.org/zap"
)

// NewStore creates a tab store based on configuration.
func NewStore(logger *zap.Logger, cfg *config.SessionConfig) (Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "disk":
		return NewDiskStore(logger, cfg.Path)
	case "redis":
		return NewRedisStore(logger, cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported session store type: %s", cfg.Type)
	}
}

// Manager hands out one hydrated registry per user.
type Manager struct {
	mu    sync.Mutex
	store Store
	regs  map[string]*Registry
}

// NewManager creates a registry manager over a store.
func NewManager(store Store) *Manager {
	return &Manager{store: store, regs: make(map[string]*Registry)}
}

// ForUser returns the user's registry, hydrating it on first access.
func (m *Manager) ForUser(ctx context.Context, user string) (*Registry, error) {
	m.mu.Lock()
	reg, ok := m.regs[user]
	if !ok {
		reg = NewRegistry(user, m.store)
		m.regs[user] = reg
	}
	m.mu.Unlock()

	if err := reg.Hydrate(ctx); err != nil {
		return nil, err
	}
	return reg, nil
}
