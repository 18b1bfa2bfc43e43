// Package tabs maintains each user's set of open page tabs, mirroring a
// multi-document interface that survives reloads through a persisted store.
package tabs

import (
	"context"
	"strings"
)

// Tab is one open page.
type Tab struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	LabelKey string `json:"labelKey"`
	ParentID string `json:"parentId"`
	Pinned   bool   `json:"pinned"`
}

// Meta carries the display attributes of a tab when a route is first opened.
type Meta struct {
	LabelKey string `json:"labelKey"`
	ParentID string `json:"parentId"`
	Pinned   bool   `json:"pinned"`
}

// State is the persisted tab set of one user. Tabs keep insertion order,
// which is also left-to-right render order. ActiveTabID is always the ID of
// a present tab, or empty when the set is empty.
type State struct {
	Tabs        []Tab  `json:"tabs"`
	ActiveTabID string `json:"activeTabId"`
}

// Store persists tab state per user. Load returns an empty state, not an
// error, when the user has no saved tabs yet.
type Store interface {
	Load(ctx context.Context, user string) (*State, error)
	Save(ctx context.Context, user string, st *State) error
	Delete(ctx context.Context, user string) error
}

// TabID derives the stable tab identifier from a route path.
func TabID(path string) string {
	id := strings.Trim(path, "/")
	if id == "" {
		return "root"
	}
	return strings.ReplaceAll(id, "/", "-")
}
