// Package routes declares HTTP routes as data and registers them on a ServeMux.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group shares a path prefix across its routes and nested groups.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route in groups to mux and returns the registered
// patterns in registration order.
func Register(mux *http.ServeMux, groups ...Group) []string {
	var patterns []string
	for _, g := range groups {
		patterns = register(mux, "", g, patterns)
	}
	return patterns
}

func register(mux *http.ServeMux, parent string, g Group, patterns []string) []string {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		pattern := r.Method + " " + prefix + r.Pattern
		mux.HandleFunc(pattern, r.Handler)
		patterns = append(patterns, pattern)
	}
	for _, child := range g.Children {
		patterns = register(mux, prefix, child, patterns)
	}
	return patterns
}
