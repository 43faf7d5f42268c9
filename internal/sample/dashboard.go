package sample

import "github.com/marcus/dash/internal/nav"

// Stat is a headline figure on the dashboard
type Stat struct {
	Title  string
	Value  string
	Change string
	Up     bool
	Icon   nav.Icon
}

// Feature is a dashboard card. Cards without a Path are informational.
type Feature struct {
	Title       string
	Description string
	Action      string
	Path        string
	IsNew       bool
	Icon        nav.Icon
}

// Stats are the dashboard headline figures
var Stats = []Stat{
	{Title: "Orders Today", Value: "247", Change: "+12%", Up: true, Icon: nav.IconShoppingCart},
	{Title: "Active Users", Value: "1,429", Change: "+5%", Up: true, Icon: nav.IconUsers},
	{Title: "Inventory Items", Value: "8,234", Change: "-2%", Up: false, Icon: nav.IconPackage},
	{Title: "Revenue", Value: "$94,230", Change: "+18%", Up: true, Icon: nav.IconBarChart},
}

// QuickActions are the navigable feature cards
var QuickActions = []Feature{
	{
		Title:       "Place Order",
		Description: "Simulate order placement flow with real-time validation and inventory checks.",
		Action:      "Simulate order placement flow",
		Path:        "/orders/place",
		Icon:        nav.IconPackage,
	},
	{
		Title:       "Process Return",
		Description: "Handle return management with automated workflows and customer notifications.",
		Action:      "Handle return management",
		Path:        "/orders/returns",
		Icon:        nav.IconShoppingCart,
	},
	{
		Title:       "View Orchestration",
		Description: "Explore how independent services work together to create robust business processes.",
		Action:      "Service coordination",
		Path:        "/orders/orchestration",
		Icon:        nav.IconActivity,
	},
	{
		Title:       "Track Shipment",
		Description: "Monitor logistics operations with real-time tracking and delivery updates.",
		Action:      "Logistics simulation",
		Path:        "/logistics/tracking",
		IsNew:       true,
		Icon:        nav.IconTruck,
	},
}

// Capabilities are the informational feature cards
var Capabilities = []Feature{
	{
		Title:       "Real-time Processing",
		Description: "Experience how our system handles orders, inventory, and logistics in real-time with seamless automation.",
		Action:      "Explore real-time features",
		Icon:        nav.IconActivity,
	},
	{
		Title:       "Microservices Architecture",
		Description: "Discover how independent services work together to create a robust and scalable business platform.",
		Action:      "Learn about architecture",
		Icon:        nav.IconDatabase,
	},
	{
		Title:       "Multi-tenant Support",
		Description: "See how the system manages multiple brands and stores while maintaining data isolation and security.",
		Action:      "View tenant management",
		Icon:        nav.IconGlobe,
	},
}

// Greeting returns the salutation for the given hour of day
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
