package shell

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/sample"
)

// Palette holds the colors of one theme
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Surface   lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	darkPalette = Palette{
		Primary:   lipgloss.Color("69"),
		Secondary: lipgloss.Color("141"),
		Text:      lipgloss.Color("255"),
		Muted:     lipgloss.Color("244"),
		Border:    lipgloss.Color("240"),
		Surface:   lipgloss.Color("237"),
		Success:   lipgloss.Color("42"),
		Warning:   lipgloss.Color("214"),
		Error:     lipgloss.Color("196"),
	}

	lightPalette = Palette{
		Primary:   lipgloss.Color("27"),
		Secondary: lipgloss.Color("92"),
		Text:      lipgloss.Color("235"),
		Muted:     lipgloss.Color("243"),
		Border:    lipgloss.Color("250"),
		Surface:   lipgloss.Color("254"),
		Success:   lipgloss.Color("28"),
		Warning:   lipgloss.Color("130"),
		Error:     lipgloss.Color("160"),
	}
)

// Styles are the lipgloss styles derived from a palette
type Styles struct {
	Palette Palette

	Panel       lipgloss.Style
	ActivePanel lipgloss.Style
	PanelTitle  lipgloss.Style
	TopBar      lipgloss.Style
	Brand       lipgloss.Style
	Modal       lipgloss.Style
	Card        lipgloss.Style
	ActiveCard  lipgloss.Style

	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Help     lipgloss.Style
	Selected lipgloss.Style
	Active   lipgloss.Style
	Badge    lipgloss.Style
	New      lipgloss.Style
	Section  lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Button map[string]lipgloss.Style
	Tones  map[sample.Tone]lipgloss.Style
}

// NewStyles builds the style set for p
func NewStyles(p Palette) Styles {
	s := Styles{Palette: p}

	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.ActivePanel = s.Panel.BorderForeground(p.Primary)
	s.PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Surface).Padding(0, 1)
	s.TopBar = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.Brand = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	s.Modal = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	s.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.ActiveCard = s.Card.BorderForeground(p.Primary)

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(p.Text)
	s.Subtle = lipgloss.NewStyle().Foreground(p.Muted)
	s.Help = lipgloss.NewStyle().Foreground(p.Muted)
	s.Selected = lipgloss.NewStyle().Background(p.Surface).Bold(true)
	s.Active = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	s.Badge = lipgloss.NewStyle().Foreground(p.Secondary)
	s.New = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	s.Section = lipgloss.NewStyle().Foreground(p.Muted).Bold(true)

	s.Success = lipgloss.NewStyle().Foreground(p.Success)
	s.Warning = lipgloss.NewStyle().Foreground(p.Warning)
	s.Error = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	button := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	s.Button = map[string]lipgloss.Style{
		"default":     button.Background(p.Primary).Foreground(lipgloss.Color("255")),
		"secondary":   button.Background(p.Surface).Foreground(p.Text),
		"destructive": button.Background(p.Error).Foreground(lipgloss.Color("255")),
		"outline":     button.Border(lipgloss.NormalBorder()).BorderForeground(p.Border).Padding(0, 1),
		"ghost":       button.Foreground(p.Text),
		"link":        button.Foreground(p.Primary).Underline(true),
	}

	s.Tones = map[sample.Tone]lipgloss.Style{
		sample.ToneNeutral:  s.Subtle,
		sample.TonePositive: s.Success,
		sample.ToneNegative: lipgloss.NewStyle().Foreground(p.Error),
		sample.TonePending:  s.Warning,
	}
	return s
}

var (
	darkStyles  = NewStyles(darkPalette)
	lightStyles = NewStyles(lightPalette)
)

// stylesFor resolves a theme preference to a style set. The system theme
// follows the terminal background detected at startup.
func stylesFor(theme models.Theme, systemDark bool) Styles {
	switch theme {
	case models.ThemeLight:
		return lightStyles
	case models.ThemeDark:
		return darkStyles
	}
	if systemDark {
		return darkStyles
	}
	return lightStyles
}
