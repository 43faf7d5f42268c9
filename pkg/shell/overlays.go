package shell

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/nav"
	"github.com/sahilm/fuzzy"
)

// maxSearchResults bounds the jump-to-page list
const maxSearchResults = 8

// pageSearchSource adapts menu items for the fuzzy library. Each item is
// searched as "DisplayName path description".
type pageSearchSource []nav.MenuItem

func (s pageSearchSource) String(i int) string {
	return s[i].DisplayName + " " + s[i].Path + " " + s[i].Metadata.Description
}

func (s pageSearchSource) Len() int {
	return len(s)
}

// searchPages ranks items against query, best match first. An empty query
// lists the items in menu order.
func searchPages(query string, items []nav.MenuItem) []nav.MenuItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	matches := fuzzy.FindFrom(query, pageSearchSource(items))
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	result := make([]nav.MenuItem, len(matches))
	for i, match := range matches {
		result[i] = items[match.Index]
	}
	return result
}

// refreshSearch recomputes matches for the search input
func (m *Model) refreshSearch() {
	matches := searchPages(m.SearchInput.Value(), m.Nav.Items())
	if len(matches) > maxSearchResults {
		matches = matches[:maxSearchResults]
	}
	m.SearchMatches = matches
	m.SearchCursor = clamp(m.SearchCursor, len(matches))
}

// openSearchMatch navigates to the selected match and closes the search
func (m *Model) openSearchMatch() tea.Cmd {
	m.Overlay = OverlayNone
	m.SearchInput.Blur()
	if len(m.SearchMatches) == 0 {
		return nil
	}
	item := m.SearchMatches[clamp(m.SearchCursor, len(m.SearchMatches))]
	m.SearchCursor = 0
	return m.navigate(item.Path)
}

func (m *Model) openThemePicker() {
	m.Overlay = OverlayTheme
	m.PickerCursor = 0
	current := m.Prefs.Theme.Get()
	for i, t := range models.Themes {
		if t == current {
			m.PickerCursor = i
		}
	}
}

func (m *Model) openLanguagePicker() {
	m.Overlay = OverlayLanguage
	m.PickerCursor = 0
	current := m.Prefs.Language.Get()
	for i, opt := range models.Languages {
		if opt.Code == current {
			m.PickerCursor = i
		}
	}
}

// pickerLen is the number of options in the open picker
func (m Model) pickerLen() int {
	switch m.Overlay {
	case OverlayTheme:
		return len(models.Themes)
	case OverlayLanguage:
		return len(models.Languages)
	case OverlayUserMenu:
		return len(userMenu)
	}
	return 0
}

// confirmPicker applies the option under the cursor and closes the picker
func (m *Model) confirmPicker() tea.Cmd {
	overlay := m.Overlay
	i := clamp(m.PickerCursor, m.pickerLen())
	m.Overlay = OverlayNone

	switch overlay {
	case OverlayTheme:
		theme := models.Themes[i]
		m.Prefs.Theme.Set(theme)
		m.markdown = make(map[string]string)
		return m.setStatus("Theme: "+theme.Label(), false)

	case OverlayLanguage:
		lang := models.Languages[i]
		m.Prefs.Language.Set(lang.Code)
		return m.setStatus("Language: "+lang.Name, false)

	case OverlayUserMenu:
		entry := userMenu[i]
		if entry.Path == "" {
			return m.logout()
		}
		return m.navigate(entry.Path)
	}
	return nil
}
