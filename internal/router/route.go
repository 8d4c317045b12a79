package router

import "strings"

// Kind is the closed set of route shapes the router dispatches on.
type Kind int

const (
	KindRoot Kind = iota
	KindStatic
	KindNewsDetail
	KindEventDetail
	KindAdmin
)

// Route is a normalized in-app path. Parsing never fails: whatever the
// browser hands over degrades to a shape the dispatcher can handle.
type Route struct {
	// Path is the normalized form, always beginning with "/".
	Path string
	// Kind selects the dispatch arm.
	Kind Kind
	// Section is the first path segment; it drives nav highlighting and
	// names the static fragment for static routes.
	Section string
	// DetailLink is the "<id>-<slug>" identity for detail routes.
	DetailLink string
}

// Parse normalizes a location-fragment path into a Route. The leading
// fragment marker is stripped, an empty path becomes the root route and a
// missing slash is tolerated.
func Parse(path string) Route {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "#")
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return Route{Path: "/", Kind: KindRoot}
	}

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	section := segments[0]

	route := Route{Path: path, Section: section, Kind: KindStatic}

	switch {
	case section == "admin":
		route.Kind = KindAdmin
	case len(segments) == 2 && section == "news":
		route.Kind = KindNewsDetail
		route.DetailLink = segments[1]
	case len(segments) == 2 && section == "events":
		route.Kind = KindEventDetail
		route.DetailLink = segments[1]
	}

	return route
}
