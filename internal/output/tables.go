package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/dash/internal/sample"
)

// UserColumns and OrderColumns are the table headers
var (
	UserColumns  = []string{"NAME", "EMAIL", "ROLE", "STATUS", "LAST LOGIN"}
	OrderColumns = []string{"ORDER", "CUSTOMER", "AMOUNT", "STATUS", "DATE", "ITEMS"}
)

// UserCells returns the display cells of a user row, status colored
func UserCells(u sample.User) []string {
	return []string{u.Name, u.Email, u.Role, FormatStatus(u.Status), u.LastLogin}
}

// OrderCells returns the display cells of an order row, status colored
func OrderCells(o sample.Order) []string {
	return []string{o.ID, o.Customer, o.FormatAmount(), FormatStatus(o.Status), o.Date, fmt.Sprint(o.Items)}
}

// FormatUsersTable renders user rows as an aligned text table
func FormatUsersTable(users []sample.User) string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserCells(u))
	}
	return formatTable(UserColumns, rows)
}

// FormatOrdersTable renders order rows as an aligned text table
func FormatOrdersTable(orders []sample.Order) string {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, OrderCells(o))
	}
	return formatTable(OrderColumns, rows)
}

// UserRowText is the plain-text form of a user row (clipboard)
func UserRowText(u sample.User) string {
	return strings.Join([]string{u.Name, u.Email, u.Role, u.Status, u.LastLogin}, "\t")
}

// OrderRowText is the plain-text form of an order row (clipboard)
func OrderRowText(o sample.Order) string {
	return strings.Join([]string{o.ID, o.Customer, o.FormatAmount(), o.Status, o.Date, fmt.Sprint(o.Items)}, "\t")
}

// AlignColumns pads every column to its widest cell and returns the header
// line followed by one line per row. Widths are measured with lipgloss so
// styled cells align.
func AlignColumns(header []string, rows [][]string) []string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	pad := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, pad(header))
	for _, row := range rows {
		lines = append(lines, pad(row))
	}
	return lines
}

func formatTable(header []string, rows [][]string) string {
	if len(rows) == 0 {
		return subtleStyle.Render("No results.")
	}
	lines := AlignColumns(header, rows)
	lines[0] = titleStyle.Render(lines[0])
	return strings.Join(lines, "\n")
}
