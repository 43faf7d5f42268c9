package shell

import (
	"time"

	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/session"
)

// Focus is the panel receiving cursor keys
type Focus int

const (
	FocusSidebar Focus = iota
	FocusContent
)

// Overlay is the modal drawn above the shell, if any
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlaySearch
	OverlayTheme
	OverlayLanguage
	OverlayUserMenu
	OverlayForm
)

// Table selects the dataset on the tables page
type Table int

const (
	TableUsers Table = iota
	TableOrders
)

func (t Table) String() string {
	if t == TableOrders {
		return "Orders"
	}
	return "Users"
}

// ClearStatusMsg clears the notification line. Seq guards against clearing a
// newer notification than the one that scheduled the tick.
type ClearStatusMsg struct {
	Seq int
}

// SessionResultMsg delivers the outcome of a session operation
type SessionResultMsg struct {
	Op       models.EventKind
	Provider session.Provider
	Email    string
	Result   session.Result
}

// EventsMsg carries recent session events for the activity page
type EventsMsg struct {
	Events []models.SessionEvent
	Err    error
}

// Question is an entry submitted on the ask-questions page
type Question struct {
	Text string
	At   time.Time
}

// Project is a project creation request from the ask-questions page
type Project struct {
	Repository string
	Name       string
	HasToken   bool
	At         time.Time
}

// Link is a navigable row of a page
type Link struct {
	Title       string
	Description string
	Path        string
}

// userMenuEntry is a row of the user menu overlay
type userMenuEntry struct {
	Label string
	Path  string // empty for sign out
}

var userMenu = []userMenuEntry{
	{Label: "Profile", Path: "/profile"},
	{Label: "Settings", Path: "/settings"},
	{Label: "Sign out"},
}
