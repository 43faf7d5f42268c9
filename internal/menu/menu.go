// Package menu projects the navigation tree, the current route and the
// sidebar mode onto a render tree with per-item flags.
package menu

import "github.com/marcus/dash/internal/nav"

// Item is one rendered sidebar entry
type Item struct {
	ID          string
	DisplayName string
	Path        string
	Icon        nav.Icon
	Badge       string
	IsNew       bool
	Depth       int // 0 for top-level items, 1 for sub-items

	IsActive            bool // path equals the current route
	HasActiveDescendant bool // a sub-item's path equals the current route
	Highlight           bool
	Expandable          bool // activating toggles rather than navigates
	Expanded            bool

	// Children holds only the visible sub-items
	Children []Item
}

// Section is a titled group of rendered items
type Section struct {
	ID    string
	Title string
	Items []Item
}

// Tree is the full render result
type Tree struct {
	Collapsed bool
	Sections  []Section
}

// Render computes the flags of every item for currentPath. When collapsed,
// sub-items are never shown and every item navigates to its own path.
func Render(sections []nav.MenuSection, currentPath string, collapsed bool, exp *Expansion) Tree {
	tree := Tree{Collapsed: collapsed, Sections: make([]Section, 0, len(sections))}
	for _, sec := range sections {
		rs := Section{ID: sec.ID, Title: sec.Title, Items: make([]Item, 0, len(sec.Items))}
		for _, item := range sec.Items {
			rs.Items = append(rs.Items, renderItem(item, currentPath, collapsed, exp))
		}
		tree.Sections = append(tree.Sections, rs)
	}
	return tree
}

func renderItem(item nav.MenuItem, currentPath string, collapsed bool, exp *Expansion) Item {
	r := leaf(item, currentPath, 0)
	if !item.HasSubItems() {
		return r
	}

	r.HasActiveDescendant = hasActiveDescendant(item, currentPath)
	r.Highlight = r.IsActive || r.HasActiveDescendant
	if collapsed {
		return r
	}

	r.Expandable = true
	r.Expanded = exp.IsOpen(item.ID) || r.HasActiveDescendant
	if r.Expanded {
		for _, sub := range item.SubItems {
			r.Children = append(r.Children, leaf(sub, currentPath, 1))
		}
	}
	return r
}

func leaf(item nav.MenuItem, currentPath string, depth int) Item {
	active := item.Path == currentPath
	return Item{
		ID:          item.ID,
		DisplayName: item.DisplayName,
		Path:        item.Path,
		Icon:        item.Icon,
		Badge:       item.Metadata.Badge,
		IsNew:       item.Metadata.IsNew,
		Depth:       depth,
		IsActive:    active,
		Highlight:   active,
	}
}

// Rows flattens the visible items in display order
func (t Tree) Rows() []Item {
	var rows []Item
	for _, sec := range t.Sections {
		for _, item := range sec.Items {
			rows = append(rows, item)
			rows = append(rows, item.Children...)
		}
	}
	return rows
}

// Find returns the visible row at path; sub-items win over their parent
// when both share a path.
func (t Tree) Find(path string) (int, bool) {
	found := -1
	for i, row := range t.Rows() {
		if row.Path != path {
			continue
		}
		if found < 0 || row.Depth > 0 {
			found = i
		}
	}
	return found, found >= 0
}

// ActionKind says what activating an item does
type ActionKind int

const (
	ActionNavigate ActionKind = iota
	ActionToggle
)

// Action is the outcome of activating (clicking) an item
type Action struct {
	Kind ActionKind
	Path string // destination for ActionNavigate
	ID   string
}

// Activate applies a click on item. Expandable items toggle their expansion;
// everything else, and every item while collapsed, navigates.
func Activate(item Item, collapsed bool, exp *Expansion) Action {
	if item.Depth == 0 && item.Expandable && !collapsed {
		exp.Toggle(item.ID, collapsed)
		return Action{Kind: ActionToggle, ID: item.ID}
	}
	return Action{Kind: ActionNavigate, Path: item.Path, ID: item.ID}
}
