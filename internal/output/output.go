// Package output provides styled terminal output helpers (success, error,
// warning, session and table formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/dash/internal/menu"
	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/nav"
	"github.com/marcus/dash/internal/sample"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	toneStyles   = map[sample.Tone]lipgloss.Style{
		sample.TonePositive: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		sample.ToneNegative: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		sample.TonePending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound      = "not_found"
	ErrCodeInvalidInput  = "invalid_input"
	ErrCodeSessionFailed = "session_failed"
	ErrCodeStoreError    = "store_error"
)

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	data, _ := json.Marshal(map[string]interface{}{
		"error": map[string]string{"code": code, "message": message},
	})
	fmt.Println(string(data))
}

// FormatStatus colors a sample row status by its tone
func FormatStatus(status string) string {
	style, ok := toneStyles[sample.StatusTone(status)]
	if !ok {
		return status
	}
	return style.Render(status)
}

// FormatUser formats a signed-in user as "Name <email>"
func FormatUser(u *models.User) string {
	if u == nil {
		return subtleStyle.Render("(anonymous)")
	}
	return fmt.Sprintf("%s <%s>", titleStyle.Render(u.Name), u.Email)
}

// FormatSession renders the session state for `dash whoami`
func FormatSession(st models.AuthState) string {
	if !st.IsAuthenticated {
		return "Not signed in " + subtleStyle.Render("(run dash login)")
	}
	var sb strings.Builder
	sb.WriteString(FormatUser(st.User) + "\n")
	sb.WriteString(subtleStyle.Render("  id:     "+st.User.ID) + "\n")
	if st.User.Avatar != "" {
		sb.WriteString(subtleStyle.Render("  avatar: "+st.User.Avatar) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatEvent formats a session event line
func FormatEvent(ev models.SessionEvent) string {
	line := fmt.Sprintf("%-15s %s", ev.Kind, ev.Email)
	return line + "  " + subtleStyle.Render(FormatTimeAgo(ev.CreatedAt))
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// FormatMenu renders a menu tree as indented text. Active items are marked
// with ">" and highlighted; collapsed trees show glyphs only.
func FormatMenu(tree menu.Tree, width int) string {
	var sb strings.Builder
	for _, sec := range tree.Sections {
		if !tree.Collapsed {
			sb.WriteString(SectionHeader(sec.Title))
		}
		for _, item := range sec.Items {
			sb.WriteString(menuLine(item, tree.Collapsed, width) + "\n")
			for _, child := range item.Children {
				sb.WriteString(menuLine(child, false, width) + "\n")
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func menuLine(item menu.Item, collapsed bool, width int) string {
	marker := "  "
	if item.IsActive {
		marker = "> "
	}
	glyph := nav.Glyph(item.Icon)
	if collapsed {
		line := marker + glyph
		if item.Highlight {
			return activeStyle.Render(line)
		}
		return line
	}

	indent := strings.Repeat("  ", item.Depth)
	chevron := "  "
	if item.Expandable {
		chevron = "▸ "
		if item.Expanded {
			chevron = "▾ "
		}
	}
	label := indent + marker + glyph + " " + item.DisplayName
	if width > 0 {
		label = ansi.Truncate(label, width, "…")
	}
	if item.Highlight {
		label = activeStyle.Render(label)
	}
	var tags []string
	if item.Badge != "" {
		tags = append(tags, badgeStyle.Render("["+item.Badge+"]"))
	}
	if item.IsNew {
		tags = append(tags, successStyle.Render("[New]"))
	}
	if len(tags) > 0 {
		label += " " + strings.Join(tags, " ")
	}
	return chevron + label
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nORDER MANAGEMENT:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// IndentLines indents each line by the specified number of spaces
func IndentLines(lines []string, spaces int) []string {
	indent := strings.Repeat(" ", spaces)
	result := make([]string, len(lines))
	for i, line := range lines {
		result[i] = indent + line
	}
	return result
}
