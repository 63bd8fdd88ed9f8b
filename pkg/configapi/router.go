package configapi

import "strings"

// Handler serves one route.
type Handler func(*Context) (*Response, error)

type route struct {
	method   string
	segments []string
	handler  Handler
}

type router struct {
	routes []route
}

func (r *router) add(method, pattern string, handler Handler) {
	r.routes = append(r.routes, route{
		method:   strings.ToUpper(strings.TrimSpace(method)),
		segments: splitPath(pattern),
		handler:  handler,
	})
}

// match finds the handler for method+path. Unknown methods on a known path are not
// distinguished from unknown paths.
func (r *router) match(method, path string) Handler {
	method = strings.ToUpper(strings.TrimSpace(method))
	pathSegments := splitPath(path)

	for _, candidate := range r.routes {
		if candidate.method == method && equalSegments(candidate.segments, pathSegments) {
			return candidate.handler
		}
	}
	return nil
}

func splitPath(path string) []string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func equalSegments(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
