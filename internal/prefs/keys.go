package prefs

import "github.com/marcus/dash/internal/models"

// Preference keys
const (
	KeyAuth     = "auth"
	KeyTheme    = "theme"
	KeyLanguage = "language"
	KeySidebar  = "sidebar"
)

// AllKeys lists every key the application registers
var AllKeys = []string{KeyAuth, KeyTheme, KeyLanguage, KeySidebar}

// Set groups the application's typed preferences
type Set struct {
	Store            *Store
	Auth             *Preference[models.AuthState]
	Theme            *Preference[models.Theme]
	Language         *Preference[models.Language]
	SidebarCollapsed *Preference[bool]
}

// Register binds the application preferences to store and loads them
func Register(store *Store) *Set {
	store.Init(AllKeys...)
	return &Set{
		Store:            store,
		Auth:             New(store, KeyAuth, models.Anonymous(), models.AuthState.Valid),
		Theme:            New(store, KeyTheme, models.ThemeSystem, models.Theme.Valid),
		Language:         New(store, KeyLanguage, models.LanguageEnglish, models.Language.Valid),
		SidebarCollapsed: New(store, KeySidebar, false, nil),
	}
}
