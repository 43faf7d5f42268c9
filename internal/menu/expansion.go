package menu

import "github.com/marcus/dash/internal/nav"

// Expansion is the per-sidebar open/closed state of items with sub-items,
// keyed by item ID. The zero value is usable; nothing starts open.
type Expansion struct {
	open map[string]bool
}

// NewExpansion returns state for a freshly mounted sidebar. Parents of the
// item at currentPath start open.
func NewExpansion(sections []nav.MenuSection, currentPath string) *Expansion {
	e := &Expansion{}
	e.Sync(sections, currentPath)
	return e
}

// IsOpen reports the stored toggle state of id
func (e *Expansion) IsOpen(id string) bool {
	if e == nil {
		return false
	}
	return e.open[id]
}

// Toggle flips the stored state of id. It is a no-op while the sidebar is
// collapsed; it reports whether anything changed.
func (e *Expansion) Toggle(id string, collapsed bool) bool {
	if collapsed || e == nil {
		return false
	}
	e.set(id, !e.open[id])
	return true
}

// Sync opens every parent whose sub-item is at path. Call it whenever the
// route changes so a previously collapsed parent re-opens.
func (e *Expansion) Sync(sections []nav.MenuSection, path string) {
	for _, sec := range sections {
		for _, item := range sec.Items {
			if hasActiveDescendant(item, path) {
				e.set(item.ID, true)
			}
		}
	}
}

func (e *Expansion) set(id string, open bool) {
	if e.open == nil {
		e.open = make(map[string]bool)
	}
	e.open[id] = open
}

func hasActiveDescendant(item nav.MenuItem, path string) bool {
	for _, sub := range item.SubItems {
		if sub.Path == path {
			return true
		}
	}
	return false
}
