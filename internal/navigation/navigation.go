// Package navigation describes which screens a session can reach. The graph
// is chosen from the signed-in user's role.
package navigation

import "dermassist/internal/domain/entity"

// Route is a single destination.
type Route struct {
	Name  string
	Title string
	// Tab marks destinations shown in the bottom tab bar.
	Tab bool
}

// Graph is one of AuthGraph, PatientGraph or DermatologistGraph.
type Graph interface {
	Name() string
	Routes() []Route
	isGraph()
}

type AuthGraph struct{}

type PatientGraph struct{}

type DermatologistGraph struct{}

func (AuthGraph) Name() string          { return "auth" }
func (PatientGraph) Name() string       { return "patient" }
func (DermatologistGraph) Name() string { return "dermatologist" }

func (AuthGraph) isGraph()          {}
func (PatientGraph) isGraph()       {}
func (DermatologistGraph) isGraph() {}

func (AuthGraph) Routes() []Route {
	return []Route{
		{Name: "login", Title: "Log In"},
		{Name: "signup", Title: "Sign Up"},
		{Name: "forgot-password", Title: "Forgot Password"},
		{Name: "verify-otp", Title: "Verify Code"},
		{Name: "reset-password", Title: "Reset Password"},
	}
}

func (PatientGraph) Routes() []Route {
	return []Route{
		{Name: "home", Title: "Home", Tab: true},
		{Name: "scan", Title: "Scan", Tab: true},
		{Name: "history", Title: "History", Tab: true},
		{Name: "reviews", Title: "My Reviews", Tab: true},
		{Name: "profile", Title: "Profile", Tab: true},
		{Name: "prediction-detail", Title: "Analysis Result"},
		{Name: "request-review", Title: "Request Review"},
		{Name: "review-detail", Title: "Review Details"},
		{Name: "treatment", Title: "Treatment Suggestions"},
		{Name: "notifications", Title: "Notifications"},
		{Name: "report", Title: "Report"},
	}
}

func (DermatologistGraph) Routes() []Route {
	return []Route{
		{Name: "dashboard", Title: "Dashboard", Tab: true},
		{Name: "pending", Title: "Pending Reviews", Tab: true},
		{Name: "completed", Title: "Completed", Tab: true},
		{Name: "profile", Title: "Profile", Tab: true},
		{Name: "review-detail", Title: "Review Request"},
		{Name: "notifications", Title: "Notifications"},
	}
}

// ForRole returns the graph for a role. Unknown roles get the auth graph.
func ForRole(role entity.Role) Graph {
	switch role {
	case entity.RolePatient:
		return PatientGraph{}
	case entity.RoleDermatologist:
		return DermatologistGraph{}
	default:
		return AuthGraph{}
	}
}

// ForUser returns the graph for the current session; nil means signed out.
func ForUser(user *entity.User) Graph {
	if user == nil {
		return AuthGraph{}
	}
	return ForRole(user.Role)
}

// Routes is a shorthand for ForRole(role).Routes().
func Routes(role entity.Role) []Route {
	return ForRole(role).Routes()
}

// Tabs returns only the tab bar destinations of g.
func Tabs(g Graph) []Route {
	var tabs []Route
	for _, r := range g.Routes() {
		if r.Tab {
			tabs = append(tabs, r)
		}
	}
	return tabs
}
