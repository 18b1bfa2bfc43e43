package tabs

import (
	"context"
	"sync"

	"github.com/harnesslab/wiremes/internal/common/cnst"
)

// Registry owns one user's tab state. All operations are synchronous; every
// mutation is written through to the store before it returns, so a reload
// resumes from the last committed set.
//
// A registry starts unhydrated. Hydrate must succeed before any read or
// mutation; earlier calls fail with cnst.ErrNotHydrated rather than acting
// on state that the store has not delivered yet.
type Registry struct {
	mu       sync.Mutex
	user     string
	store    Store
	state    State
	hydrated bool
}

// NewRegistry creates an unhydrated registry for a user.
func NewRegistry(user string, store Store) *Registry {
	return &Registry{user: user, store: store}
}

// Hydrate loads the persisted tab set. It is idempotent.
func (r *Registry) Hydrate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hydrated {
		return nil
	}

	st, err := r.store.Load(ctx, r.user)
	if err != nil {
		return err
	}
	r.state = *st
	r.hydrated = true
	return nil
}

// Snapshot returns a copy of the current state.
func (r *Registry) Snapshot() (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hydrated {
		return State{}, cnst.ErrNotHydrated
	}
	return r.copyState(), nil
}

// OpenOrActivate activates the tab already holding path, or appends a new
// one built from meta. New tabs always append at the end.
func (r *Registry) OpenOrActivate(ctx context.Context, path string, meta Meta) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hydrated {
		return State{}, cnst.ErrNotHydrated
	}

	for _, t := range r.state.Tabs {
		if t.Path == path {
			r.state.ActiveTabID = t.ID
			return r.commit(ctx)
		}
	}

	tab := Tab{
		ID:       TabID(path),
		Path:     path,
		LabelKey: meta.LabelKey,
		ParentID: meta.ParentID,
		Pinned:   meta.Pinned,
	}
	r.state.Tabs = append(r.state.Tabs, tab)
	r.state.ActiveTabID = tab.ID
	return r.commit(ctx)
}

// SetActiveTab activates a present tab. An unknown id is a silent no-op:
// activation can race with a close triggered elsewhere in the UI.
func (r *Registry) SetActiveTab(ctx context.Context, id string) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hydrated {
		return State{}, cnst.ErrNotHydrated
	}

	if r.indexOf(id) < 0 {
		return r.copyState(), nil
	}
	r.state.ActiveTabID = id
	return r.commit(ctx)
}

// RemoveTab closes a tab. Pinned tabs never close. When the active tab is
// removed, activation falls back to its left neighbor, then the new first
// tab, then none.
func (r *Registry) RemoveTab(ctx context.Context, id string) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hydrated {
		return State{}, cnst.ErrNotHydrated
	}

	idx := r.indexOf(id)
	if idx < 0 || r.state.Tabs[idx].Pinned {
		return r.copyState(), nil
	}

	wasActive := r.state.ActiveTabID == id
	r.state.Tabs = append(r.state.Tabs[:idx], r.state.Tabs[idx+1:]...)

	if wasActive {
		switch {
		case idx > 0:
			r.state.ActiveTabID = r.state.Tabs[idx-1].ID
		case len(r.state.Tabs) > 0:
			r.state.ActiveTabID = r.state.Tabs[0].ID
		default:
			r.state.ActiveTabID = ""
		}
	}
	return r.commit(ctx)
}

// CloseOtherTabs removes every non-pinned tab except keepID. Pinned tabs
// always survive bulk operations.
func (r *Registry) CloseOtherTabs(ctx context.Context, keepID string) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hydrated {
		return State{}, cnst.ErrNotHydrated
	}

	kept := r.state.Tabs[:0]
	for _, t := range r.state.Tabs {
		if t.Pinned || t.ID == keepID {
			kept = append(kept, t)
		}
	}
	r.state.Tabs = kept

	if r.indexOf(r.state.ActiveTabID) < 0 {
		if r.indexOf(keepID) >= 0 {
			r.state.ActiveTabID = keepID
		} else if len(r.state.Tabs) > 0 {
			r.state.ActiveTabID = r.state.Tabs[0].ID
		} else {
			r.state.ActiveTabID = ""
		}
	}
	return r.commit(ctx)
}

// CloseAllTabs removes every non-pinned tab. The active tab becomes the
// first remaining pinned tab, or none.
func (r *Registry) CloseAllTabs(ctx context.Context) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hydrated {
		return State{}, cnst.ErrNotHydrated
	}

	kept := r.state.Tabs[:0]
	for _, t := range r.state.Tabs {
		if t.Pinned {
			kept = append(kept, t)
		}
	}
	r.state.Tabs = kept

	if len(r.state.Tabs) > 0 {
		r.state.ActiveTabID = r.state.Tabs[0].ID
	} else {
		r.state.ActiveTabID = ""
	}
	return r.commit(ctx)
}

func (r *Registry) indexOf(id string) int {
	for i, t := range r.state.Tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) copyState() State {
	st := State{ActiveTabID: r.state.ActiveTabID}
	st.Tabs = make([]Tab, len(r.state.Tabs))
	copy(st.Tabs, r.state.Tabs)
	return st
}

// commit writes the state through to the store and returns a copy. Callers
// must hold the mutex.
func (r *Registry) commit(ctx context.Context) (State, error) {
	st := r.copyState()
	if err := r.store.Save(ctx, r.user, &st); err != nil {
		return st, err
	}
	return st, nil
}
