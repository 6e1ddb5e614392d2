package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]custody.Handler
}

var _ custody.Registry = (*Router)(nil)
var _ custody.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]custody.Handler),
	}
}

// Handle adds a new Handler for the given path.
// panics if another Handler was already registered
func (r *Router) Handle(path string, h custody.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path.
// If no path is found, returns a noSuchPath Handler.
// Always returns a non-nil Handler
func (r *Router) handler(path string) custody.Handler {
	h, ok := r.routes[path]
	if !ok {
		return noSuchPathHandler{path}
	}
	return h
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx custody.Context, msg custody.Msg) (*custody.Result, error) {
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "nil message")
	}
	return r.handler(msg.Path()).Deliver(ctx, msg)
}

// noSuchPathHandler is returned by the Router when no handler for a
// given path could be found.
type noSuchPathHandler struct {
	path string
}

var _ custody.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Deliver(custody.Context, custody.Msg) (*custody.Result, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}
