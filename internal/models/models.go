package models

import (
	"strings"
	"time"
)

// User is the identity carried by an authenticated session
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"` // empty when no avatar is known
}

// AuthState is the persisted "auth" preference.
// IsAuthenticated is true iff User is non-nil.
type AuthState struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

// Anonymous returns the signed-out state
func Anonymous() AuthState {
	return AuthState{}
}

// Authenticated returns a signed-in state for u
func Authenticated(u User) AuthState {
	return AuthState{User: &u, IsAuthenticated: true}
}

// Valid reports whether the flag and the user agree
func (a AuthState) Valid() bool {
	return a.IsAuthenticated == (a.User != nil)
}

// Initials returns the upper-cased first letter of each word in the user name
func (u User) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(u.Name) {
		b.WriteString(strings.ToUpper(string([]rune(part)[0])))
	}
	return b.String()
}

// Theme is the persisted color scheme preference
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Themes lists the selectable themes in picker order
var Themes = []Theme{ThemeLight, ThemeDark, ThemeSystem}

// Valid reports whether t is a known theme
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Label returns the display name
func (t Theme) Label() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeDark:
		return "Dark"
	default:
		return "System"
	}
}

// Language is one of the fixed interface language codes
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageSpanish  Language = "es"
	LanguageFrench   Language = "fr"
	LanguageGerman   Language = "de"
	LanguageJapanese Language = "ja"
	LanguageChinese  Language = "zh"
)

// LanguageOption is a language entry of the picker
type LanguageOption struct {
	Code Language
	Name string
	Flag string
}

// Languages lists the picker entries; the first one is the fallback
var Languages = []LanguageOption{
	{Code: LanguageEnglish, Name: "English", Flag: "🇺🇸"},
	{Code: LanguageSpanish, Name: "Español", Flag: "🇪🇸"},
	{Code: LanguageFrench, Name: "Français", Flag: "🇫🇷"},
	{Code: LanguageGerman, Name: "Deutsch", Flag: "🇩🇪"},
	{Code: LanguageJapanese, Name: "日本語", Flag: "🇯🇵"},
	{Code: LanguageChinese, Name: "中文", Flag: "🇨🇳"},
}

// Valid reports whether l is one of the supported codes
func (l Language) Valid() bool {
	for _, opt := range Languages {
		if opt.Code == l {
			return true
		}
	}
	return false
}

// Option returns the picker entry for l, falling back to English
func (l Language) Option() LanguageOption {
	for _, opt := range Languages {
		if opt.Code == l {
			return opt
		}
	}
	return Languages[0]
}

// EventKind names a recorded session transition
type EventKind string

const (
	EventLogin         EventKind = "login"
	EventRegister      EventKind = "register"
	EventProviderLogin EventKind = "provider_login"
	EventRecover       EventKind = "recover"
	EventLogout        EventKind = "logout"
)

// SessionEvent is a row of the session_events table
type SessionEvent struct {
	ID        int64     `json:"id"`
	Kind      EventKind `json:"kind"`
	Email     string    `json:"email"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Config represents the workspace configuration stored in .dash/config.json
type Config struct {
	Store      string   `json:"store,omitempty"`       // "sqlite" (default), "file", "memory"
	DelayScale *float64 `json:"delay_scale,omitempty"` // multiplier for simulated latency
	LogLevel   string   `json:"log_level,omitempty"`
	LogFormat  string   `json:"log_format,omitempty"` // "text" (default) or "json"
	NavFile    string   `json:"nav_file,omitempty"`   // optional navigation YAML override
}
