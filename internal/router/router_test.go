package router

import (
	"testing"

	"github.com/marcus/dash/internal/nav"
)

func TestMatch(t *testing.T) {
	r := Default()

	tests := []struct {
		path string
		page Page
		ok   bool
	}{
		{"/", PageDashboard, true},
		{"", PageDashboard, true},
		{"/auth/login", PageLogin, true},
		{"/auth/forgot-password", PageForgotPassword, true},
		{"/tables", PageTables, true},
		{"/tables/", PageTables, true},
		{"/orders", PageOrders, true},
		{"/orders/customer", PageOrders, true},
		{"/logistics/tracking", PageLogistics, true},
		{"/users", PageUsers, true},
		{"/users/roles", PageUsers, true},
		{"/settings/billing", PageSettings, true},
		{"/help", PageHelp, true},
		{"/reports/2024", PageNotFound, false},
		{"/nope", PageNotFound, false},
		{"/auth", PageNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rt, ok := r.Match(tt.path)
			if ok != tt.ok || rt.Page != tt.page {
				t.Errorf("Match(%q) = %s,%v want %s,%v", tt.path, rt.Page, ok, tt.page, tt.ok)
			}
		})
	}
}

func TestGuards(t *testing.T) {
	tests := []struct {
		guard    Guard
		authed   bool
		to       string
		redirect bool
	}{
		{RequireAuthenticated, false, LoginPath, true},
		{RequireAuthenticated, true, "", false},
		{RequireAnonymous, true, HomePath, true},
		{RequireAnonymous, false, "", false},
		{Open, true, "", false},
		{Open, false, "", false},
	}
	for _, tt := range tests {
		to, redirect := tt.guard.Check(tt.authed)
		if to != tt.to || redirect != tt.redirect {
			t.Errorf("%s.Check(%v) = %q,%v want %q,%v", tt.guard, tt.authed, to, redirect, tt.to, tt.redirect)
		}
	}
}

func TestResolve(t *testing.T) {
	r := Default()

	tests := []struct {
		name       string
		path       string
		authed     bool
		wantPath   string
		wantPage   Page
		redirected bool
		notFound   bool
	}{
		{"anonymous protected", "/tables", false, LoginPath, PageLogin, true, false},
		{"anonymous wildcard", "/orders/customer", false, LoginPath, PageLogin, true, false},
		{"authed protected", "/tables", true, "/tables", PageTables, false, false},
		{"authed login", LoginPath, true, HomePath, PageDashboard, true, false},
		{"authed register", RegisterPath, true, HomePath, PageDashboard, true, false},
		{"anonymous login", LoginPath, false, LoginPath, PageLogin, false, false},
		{"anonymous unknown", "/missing", false, "/missing", PageNotFound, false, true},
		{"authed unknown", "/missing", true, "/missing", PageNotFound, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.path, tt.authed)
			if res.Path != tt.wantPath || res.Page != tt.wantPage {
				t.Errorf("Resolve = %s (%s), want %s (%s)", res.Path, res.Page, tt.wantPath, tt.wantPage)
			}
			if res.Redirected != tt.redirected || res.NotFound != tt.notFound {
				t.Errorf("flags = redirected:%v notFound:%v", res.Redirected, res.NotFound)
			}
			if tt.redirected && res.Guard == Open {
				t.Errorf("redirect reported without the guard that caused it")
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := map[string]string{
		"":           "/",
		"  ":         "/",
		"/":          "/",
		"//":         "/",
		"tables":     "/tables",
		"/tables///": "/tables",
	}
	for in, want := range tests {
		if got := Clean(in); got != want {
			t.Errorf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEveryMenuPathRoutes(t *testing.T) {
	r := Default()
	for _, item := range nav.Default().Items() {
		if _, ok := r.Match(item.Path); !ok {
			t.Errorf("menu item %s points at unrouted path %s", item.ID, item.Path)
		}
	}
}
