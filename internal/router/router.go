// Package router maps shell paths to pages and applies the session guards.
// Matching runs in-process on a chi route tree; nothing is served over HTTP.
package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Well-known paths
const (
	HomePath           = "/"
	LoginPath          = "/auth/login"
	RegisterPath       = "/auth/register"
	ForgotPasswordPath = "/auth/forgot-password"
	ProfilePath        = "/profile"
)

// Page identifies the content rendered for a route
type Page string

const (
	PageLogin          Page = "login"
	PageRegister       Page = "register"
	PageForgotPassword Page = "forgot-password"
	PageDashboard      Page = "dashboard"
	PageProfile        Page = "profile"
	PageWelcome        Page = "welcome"
	PageAskQuestions   Page = "ask-questions"
	PageTables         Page = "tables"
	PageButtons        Page = "buttons"
	PageAnalytics      Page = "analytics"
	PageOrders         Page = "orders"
	PageCapacity       Page = "capacity"
	PageLogistics      Page = "logistics"
	PageUsers          Page = "users"
	PageReports        Page = "reports"
	PageSettings       Page = "settings"
	PageHelp           Page = "help"
	PageNotFound       Page = "not-found"
)

// Route is an entry of the route table
type Route struct {
	Pattern string
	Page    Page
	Guard   Guard
	Title   string
	Blurb   string // shown by placeholder pages
}

// Table is the application's route surface
var Table = []Route{
	{Pattern: LoginPath, Page: PageLogin, Guard: RequireAnonymous, Title: "Sign in"},
	{Pattern: RegisterPath, Page: PageRegister, Guard: RequireAnonymous, Title: "Create account"},
	{Pattern: ForgotPasswordPath, Page: PageForgotPassword, Guard: RequireAnonymous, Title: "Reset password"},

	{Pattern: HomePath, Page: PageDashboard, Guard: RequireAuthenticated, Title: "Dashboard"},
	{Pattern: ProfilePath, Page: PageProfile, Guard: RequireAuthenticated, Title: "Profile"},
	{Pattern: "/welcome", Page: PageWelcome, Guard: RequireAuthenticated, Title: "Welcome"},
	{Pattern: "/ask-questions", Page: PageAskQuestions, Guard: RequireAuthenticated, Title: "Ask Questions"},
	{Pattern: "/tables", Page: PageTables, Guard: RequireAuthenticated, Title: "Tables"},
	{Pattern: "/buttons", Page: PageButtons, Guard: RequireAuthenticated, Title: "Button Demo"},
	{Pattern: "/analytics", Page: PageAnalytics, Guard: RequireAuthenticated, Title: "Analytics",
		Blurb: "Analytics page coming soon..."},
	{Pattern: "/orders/*", Page: PageOrders, Guard: RequireAuthenticated, Title: "Orders",
		Blurb: "Order management pages coming soon..."},
	{Pattern: "/capacity/*", Page: PageCapacity, Guard: RequireAuthenticated, Title: "Capacity",
		Blurb: "Capacity management pages coming soon..."},
	{Pattern: "/logistics/*", Page: PageLogistics, Guard: RequireAuthenticated, Title: "Logistics",
		Blurb: "Logistics pages coming soon..."},
	{Pattern: "/users/*", Page: PageUsers, Guard: RequireAuthenticated, Title: "Users",
		Blurb: "User management pages coming soon..."},
	{Pattern: "/reports", Page: PageReports, Guard: RequireAuthenticated, Title: "Reports",
		Blurb: "Reports page coming soon..."},
	{Pattern: "/settings/*", Page: PageSettings, Guard: RequireAuthenticated, Title: "Settings",
		Blurb: "Settings pages coming soon..."},
	{Pattern: "/help", Page: PageHelp, Guard: RequireAuthenticated, Title: "Help & Support"},
}

// NotFound is the catch-all route for unmatched paths. It carries no guard.
var NotFound = Route{Pattern: "*", Page: PageNotFound, Guard: Open, Title: "Page not found"}

// Router resolves paths against the route table
type Router struct {
	mux    *chi.Mux
	routes map[string]Route
}

// New builds a router over routes
func New(routes []Route) *Router {
	r := &Router{mux: chi.NewRouter(), routes: make(map[string]Route)}
	noop := func(http.ResponseWriter, *http.Request) {}
	for _, rt := range routes {
		r.mux.Get(rt.Pattern, noop)
		r.routes[rt.Pattern] = rt
		// chi's "/x/*" does not match "/x" itself
		if prefix, ok := strings.CutSuffix(rt.Pattern, "/*"); ok && prefix != "" {
			if _, exists := r.routes[prefix]; !exists {
				r.mux.Get(prefix, noop)
				r.routes[prefix] = rt
			}
		}
	}
	return r
}

// Default returns a router over Table
func Default() *Router {
	return New(Table)
}

// Match returns the route for path, or NotFound
func (r *Router) Match(path string) (Route, bool) {
	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, Clean(path)) {
		return NotFound, false
	}
	rt, ok := r.routes[rctx.RoutePattern()]
	if !ok {
		return NotFound, false
	}
	return rt, true
}

// Clean normalizes a user-entered path
func Clean(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return HomePath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = HomePath
		}
	}
	return path
}

// Resolution is the outcome of resolving a path for a session
type Resolution struct {
	Requested  string `json:"requested"`
	Path       string `json:"path"` // the path actually rendered
	Route      Route  `json:"-"`
	Page       Page   `json:"page"`
	Redirected bool   `json:"redirected"`
	Guard      Guard  `json:"-"` // the guard that redirected, when Redirected
	NotFound   bool   `json:"not_found"`
}

// Resolve matches path and applies the route's guard. A redirect is followed
// once; the redirect targets are never themselves guarded away.
func (r *Router) Resolve(path string, authenticated bool) Resolution {
	path = Clean(path)
	res := Resolution{Requested: path, Path: path}

	rt, ok := r.Match(path)
	if !ok {
		res.Route, res.Page, res.NotFound = NotFound, PageNotFound, true
		return res
	}

	if to, redirect := rt.Guard.Check(authenticated); redirect {
		res.Redirected, res.Guard = true, rt.Guard
		res.Path = to
		rt, _ = r.Match(to)
	}
	res.Route, res.Page = rt, rt.Page
	return res
}
