package nav

// Icon is a symbolic icon key. Rendering resolves it through Glyph.
type Icon string

const (
	IconHome            Icon = "home"
	IconBarChart        Icon = "bar-chart"
	IconSparkles        Icon = "sparkles"
	IconMessageQuestion Icon = "message-question"
	IconTable           Icon = "table"
	IconMouse           Icon = "mouse"
	IconShoppingCart    Icon = "shopping-cart"
	IconUsers           Icon = "users"
	IconDatabase        Icon = "database"
	IconPackage         Icon = "package"
	IconTruck           Icon = "truck"
	IconMapPin          Icon = "map-pin"
	IconShield          Icon = "shield"
	IconActivity        Icon = "activity"
	IconFileText        Icon = "file-text"
	IconSettings        Icon = "settings"
	IconBell            Icon = "bell"
	IconCreditCard      Icon = "credit-card"
	IconGlobe           Icon = "globe"
	IconHelpCircle      Icon = "help-circle"
)

// fallbackGlyph is drawn for keys missing from the table
const fallbackGlyph = "•"

// glyphs maps icon keys to single-cell terminal symbols
var glyphs = map[Icon]string{
	IconHome:            "⌂",
	IconBarChart:        "▥",
	IconSparkles:        "✦",
	IconMessageQuestion: "¿",
	IconTable:           "▦",
	IconMouse:           "◎",
	IconShoppingCart:    "⊞",
	IconUsers:           "☺",
	IconDatabase:        "≣",
	IconPackage:         "▣",
	IconTruck:           "⇶",
	IconMapPin:          "⌖",
	IconShield:          "◈",
	IconActivity:        "∿",
	IconFileText:        "▤",
	IconSettings:        "⚙",
	IconBell:            "♪",
	IconCreditCard:      "▭",
	IconGlobe:           "◍",
	IconHelpCircle:      "?",
}

// Glyph returns the symbol for icon
func Glyph(icon Icon) string {
	if g, ok := glyphs[icon]; ok {
		return g
	}
	return fallbackGlyph
}

// Known reports whether icon has a glyph
func (i Icon) Known() bool {
	_, ok := glyphs[i]
	return ok
}
