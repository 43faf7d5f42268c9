// Package sample holds the demo data shown by the dashboard and table pages.
package sample

import (
	"fmt"
	"strings"
)

// User is a row of the users table
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	LastLogin string `json:"last_login"`
}

// Order is a row of the orders table
type Order struct {
	ID       string  `json:"id"`
	Customer string  `json:"customer"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
	Date     string  `json:"date"`
	Items    int     `json:"items"`
}

// FormatAmount renders the order total as currency
func (o Order) FormatAmount() string {
	return fmt.Sprintf("$%.2f", o.Amount)
}

// Users is the sample user list
var Users = []User{
	{ID: 1, Name: "Alice Johnson", Email: "alice.johnson@example.com", Role: "Admin", Status: "Active", LastLogin: "2024-01-15"},
	{ID: 2, Name: "Bob Smith", Email: "bob.smith@example.com", Role: "Manager", Status: "Active", LastLogin: "2024-01-14"},
	{ID: 3, Name: "Carol Davis", Email: "carol.davis@example.com", Role: "User", Status: "Inactive", LastLogin: "2024-01-10"},
	{ID: 4, Name: "David Wilson", Email: "david.wilson@example.com", Role: "User", Status: "Active", LastLogin: "2024-01-15"},
	{ID: 5, Name: "Eva Martinez", Email: "eva.martinez@example.com", Role: "Manager", Status: "Pending", LastLogin: "2024-01-12"},
}

// Orders is the sample order list
var Orders = []Order{
	{ID: "ORD-001", Customer: "Tech Corp Ltd", Amount: 2580.00, Status: "Completed", Date: "2024-01-15", Items: 5},
	{ID: "ORD-002", Customer: "Global Solutions", Amount: 1420.50, Status: "Processing", Date: "2024-01-14", Items: 3},
	{ID: "ORD-003", Customer: "Innovate Inc", Amount: 3750.25, Status: "Shipped", Date: "2024-01-13", Items: 8},
	{ID: "ORD-004", Customer: "Future Dynamics", Amount: 890.75, Status: "Cancelled", Date: "2024-01-12", Items: 2},
}

func contains(query string, fields ...string) bool {
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// FilterUsers returns the users whose name, email or role contains query,
// ignoring case. An empty query returns every user.
func FilterUsers(users []User, query string) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if contains(query, u.Name, u.Email, u.Role) {
			out = append(out, u)
		}
	}
	return out
}

// FilterOrders returns the orders whose id, customer or status contains query
func FilterOrders(orders []Order, query string) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if contains(query, o.ID, o.Customer, o.Status) {
			out = append(out, o)
		}
	}
	return out
}

// Tone groups statuses for badge coloring
type Tone int

const (
	ToneNeutral Tone = iota
	TonePositive
	ToneNegative
	TonePending
)

// StatusTone classifies a user or order status
func StatusTone(status string) Tone {
	switch strings.ToLower(status) {
	case "active", "completed", "shipped":
		return TonePositive
	case "inactive", "cancelled":
		return ToneNegative
	case "pending", "processing":
		return TonePending
	}
	return ToneNeutral
}
