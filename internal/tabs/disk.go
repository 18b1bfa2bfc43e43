package tabs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DiskStore implements Store using one JSON file per user under a base
// directory.
type DiskStore struct {
	logger  *zap.Logger
	baseDir string
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore creates a new disk store rooted at baseDir.
func NewDiskStore(logger *zap.Logger, baseDir string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &DiskStore{
		logger:  logger.Named("tabs.store.disk"),
		baseDir: baseDir,
	}, nil
}

func (s *DiskStore) path(user string) string {
	// user ids are not trusted as file names
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, user)
	return filepath.Join(s.baseDir, safe+".json")
}

func (s *DiskStore) Load(ctx context.Context, user string) (*State, error) {
	data, err := os.ReadFile(s.path(user))
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("corrupt tab state for user %s: %w", user, err)
	}
	return &st, nil
}

func (s *DiskStore) Save(ctx context.Context, user string, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(user), data, 0644)
}

func (s *DiskStore) Delete(ctx context.Context, user string) error {
	err := os.Remove(s.path(user))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
