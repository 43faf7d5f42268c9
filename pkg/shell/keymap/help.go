package keymap

import (
	"fmt"
	"strings"
)

// helpSections orders the contexts shown in the help overlay
var helpSections = []struct {
	Context Context
	Title   string
}{
	{ContextMain, "SHELL"},
	{ContextSidebar, "SIDEBAR"},
	{ContextContent, "PAGES"},
	{ContextSearch, "PAGE SEARCH"},
	{ContextPicker, "MENUS"},
	{ContextAuth, "SIGN-IN PAGES"},
}

// GenerateHelp renders the registered bindings grouped by context. Keys
// sharing a command and description are merged onto one line.
func (r *Registry) GenerateHelp() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	for _, sec := range helpSections {
		bindings := r.bindings[sec.Context]
		if len(bindings) == 0 {
			continue
		}
		sb.WriteString("\n" + sec.Title + ":\n")

		var order []string
		keys := make(map[string][]string)
		for _, b := range bindings {
			id := string(b.Command) + "\x00" + b.Description
			if _, ok := keys[id]; !ok {
				order = append(order, id)
			}
			keys[id] = append(keys[id], b.Key)
		}
		for _, id := range order {
			_, desc, _ := strings.Cut(id, "\x00")
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", strings.Join(keys[id], " / "), desc))
		}
	}
	sb.WriteString("\nPress ? or esc to close help\n")
	return sb.String()
}
