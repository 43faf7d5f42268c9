package router

// Guard is a redirect policy evaluated against the session on every render
type Guard int

const (
	// Open renders regardless of the session
	Open Guard = iota
	// RequireAuthenticated sends anonymous sessions to the login page
	RequireAuthenticated
	// RequireAnonymous sends signed-in sessions to the dashboard
	RequireAnonymous
)

func (g Guard) String() string {
	switch g {
	case RequireAuthenticated:
		return "authenticated"
	case RequireAnonymous:
		return "anonymous"
	default:
		return "open"
	}
}

// Check returns the redirect target and true when the session may not see
// the guarded content.
func (g Guard) Check(authenticated bool) (string, bool) {
	switch g {
	case RequireAuthenticated:
		if !authenticated {
			return LoginPath, true
		}
	case RequireAnonymous:
		if authenticated {
			return HomePath, true
		}
	}
	return "", false
}
