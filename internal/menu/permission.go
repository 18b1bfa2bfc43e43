// Package menu implements the per-role menu permission set and the tri-state
// derivation the role administration screen renders from it.
package menu

import (
	"sort"

	"github.com/harnesslab/wiremes/internal/common/cnst"
)

// PermissionSet is the in-memory working copy of one role's menu grants.
// Mutations are pure set operations; nothing here touches storage.
type PermissionSet struct {
	codes map[string]struct{}
}

// NewPermissionSet builds a working set from the stored codes.
func NewPermissionSet(codes []string) *PermissionSet {
	s := &PermissionSet{codes: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		s.codes[c] = struct{}{}
	}
	return s
}

// Has reports whether a single code is granted.
func (s *PermissionSet) Has(code string) bool {
	_, ok := s.codes[code]
	return ok
}

// Len returns the number of granted codes.
func (s *PermissionSet) Len() int {
	return len(s.codes)
}

// Codes returns the granted codes in stable sorted order.
func (s *PermissionSet) Codes() []string {
	out := make([]string, 0, len(s.codes))
	for c := range s.codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ToggleLeaf grants or revokes a single leaf code. The owning group's own
// code is never touched; its checked state is derived, not stored.
func (s *PermissionSet) ToggleLeaf(code string, checked bool) {
	if checked {
		s.codes[code] = struct{}{}
	} else {
		delete(s.codes, code)
	}
}

// ToggleParent grants or revokes a group code together with all of its
// children in one step, so no intermediate state is ever observable.
func (s *PermissionSet) ToggleParent(parentCode string, childCodes []string, checked bool) {
	if checked {
		s.codes[parentCode] = struct{}{}
		for _, c := range childCodes {
			s.codes[c] = struct{}{}
		}
		return
	}
	delete(s.codes, parentCode)
	for _, c := range childCodes {
		delete(s.codes, c)
	}
}

// SelectAll grants every code the menu tree defines.
func (s *PermissionSet) SelectAll() {
	s.codes = make(map[string]struct{})
	for _, c := range cnst.AllMenuCodes() {
		s.codes[c] = struct{}{}
	}
}

// DeselectAll revokes everything.
func (s *PermissionSet) DeselectAll() {
	s.codes = make(map[string]struct{})
}

// ParentState is the derived tri-state of a group checkbox.
type ParentState struct {
	AllChecked    bool `json:"allChecked"`
	Indeterminate bool `json:"indeterminate"`
}

// ParentStateOf derives a group's checkbox state from the current set. Groups
// with children are fully checked only when every child is granted; a group
// without children falls back to its own stored code.
func (s *PermissionSet) ParentStateOf(parentCode string, childCodes []string) ParentState {
	if len(childCodes) == 0 {
		return ParentState{AllChecked: s.Has(parentCode)}
	}

	granted := 0
	for _, c := range childCodes {
		if s.Has(c) {
			granted++
		}
	}
	return ParentState{
		AllChecked:    granted == len(childCodes),
		Indeterminate: granted > 0 && granted < len(childCodes),
	}
}

// View is what the role administration screen renders for one role: the
// granted codes plus the derived state of every group.
type View struct {
	Codes        []string               `json:"codes"`
	ParentStates map[string]ParentState `json:"parentStates"`
	Disabled     bool                   `json:"disabled"`
}

// ViewFor builds the render model for a role. The reserved administrator
// role bypasses the stored set entirely: every known code is shown checked
// and the whole tree is disabled.
func ViewFor(roleCode string, stored []string) View {
	if roleCode == cnst.AdminRoleCode {
		all := NewPermissionSet(nil)
		all.SelectAll()
		return View{Codes: all.Codes(), ParentStates: deriveParents(all), Disabled: true}
	}

	set := NewPermissionSet(stored)
	return View{Codes: set.Codes(), ParentStates: deriveParents(set)}
}

func deriveParents(set *PermissionSet) map[string]ParentState {
	states := make(map[string]ParentState)
	for _, item := range cnst.MenuTree {
		if item.ParentCode != "" {
			continue
		}
		states[item.Code] = set.ParentStateOf(item.Code, cnst.ChildrenOf(item.Code))
	}
	return states
}
