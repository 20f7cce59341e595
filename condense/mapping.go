// SPDX-License-Identifier: MIT

package condense

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyID indicates a group or member identifier that is empty.
	ErrEmptyID = errors.New("condense: empty identifier")

	// ErrConflict indicates a member listed under two different groups.
	ErrConflict = errors.New("condense: member claimed by two groups")
)

// Mapping resolves raw identifiers onto canonical (condensed) identifiers.
type Mapping struct {
	target  map[string]string   // member → group
	groups  []string            // group ids, sorted
	members map[string][]string // group → members, definition order
}

// New validates defs (group → members) and builds a Mapping. Groups are
// visited in sorted order so conflicts are reported deterministically.
//
// Errors: ErrEmptyID, ErrConflict (wrapped with the offending ids).
// Complexity: O(G log G + M).
func New(defs map[string][]string) (*Mapping, error) {
	m := &Mapping{
		target:  make(map[string]string),
		members: make(map[string][]string, len(defs)),
	}
	for grp := range defs {
		m.groups = append(m.groups, grp)
	}
	sort.Strings(m.groups)

	for _, grp := range m.groups {
		if grp == "" {
			return nil, ErrEmptyID
		}
		for _, mem := range defs[grp] {
			if mem == "" {
				return nil, fmt.Errorf("group %q: %w", grp, ErrEmptyID)
			}
			if prev, ok := m.target[mem]; ok {
				if prev == grp {
					continue
				}
				return nil, fmt.Errorf("%q in %q and %q: %w", mem, prev, grp, ErrConflict)
			}
			m.target[mem] = grp
			m.members[grp] = append(m.members[grp], mem)
		}
	}

	return m, nil
}

// Merge combines explicit definitions with derived ones (product groups).
// Explicit entries take precedence: a derived group whose id is also an
// explicit group is ignored, and derived members already claimed by an
// explicit group are dropped from the derived group.
func Merge(explicit, derived map[string][]string) (*Mapping, error) {
	claimed := make(map[string]bool)
	defs := make(map[string][]string, len(explicit)+len(derived))
	for grp, mems := range explicit {
		defs[grp] = append([]string(nil), mems...)
		for _, mem := range mems {
			claimed[mem] = true
		}
	}
	for grp, mems := range derived {
		if _, ok := explicit[grp]; ok {
			continue
		}
		for _, mem := range mems {
			if !claimed[mem] {
				defs[grp] = append(defs[grp], mem)
			}
		}
	}

	return New(defs)
}

// Resolve returns the canonical identifier for id (id itself when unmapped).
func (m *Mapping) Resolve(id string) string {
	if m == nil {
		return id
	}
	if grp, ok := m.target[id]; ok {
		return grp
	}

	return id
}

// Mapped reports whether id is a member of some group.
func (m *Mapping) Mapped(id string) bool {
	if m == nil {
		return false
	}
	_, ok := m.target[id]

	return ok
}

// Groups returns the canonical group ids in sorted order.
func (m *Mapping) Groups() []string {
	if m == nil {
		return nil
	}

	return append([]string(nil), m.groups...)
}

// Members returns the members of grp in definition order.
func (m *Mapping) Members(grp string) []string {
	if m == nil {
		return nil
	}

	return append([]string(nil), m.members[grp]...)
}

// Len returns the number of mapped members.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.target)
}
