// Package module mounts self-contained HTTP surfaces, each with its own
// middleware stack, under single-segment path prefixes.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/JaimeStill/palmwatch/pkg/middleware"
)

// Module serves every request below its prefix through its own router.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System

	mu      sync.Mutex
	handler http.Handler
}

// New creates a Module for a single-segment prefix such as "/api".
// It panics on an empty, relative or nested prefix.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Handler returns the router wrapped in the middleware stack. The composed
// handler is built once and rebuilt only after Use.
func (m *Module) Handler() http.Handler {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handler == nil {
		m.handler = m.middleware.Apply(m.router)
	}
	return m.handler
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve dispatches req with the module prefix removed from its path.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, stripPrefix(req, m.prefix))
}

// Use appends mw to the stack. The first registered middleware runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.middleware.Use(mw)
	m.handler = nil
}

func stripPrefix(req *http.Request, prefix string) *http.Request {
	path := strings.TrimPrefix(req.URL.Path, prefix)
	if path == "" {
		path = "/"
	}

	u := new(url.URL)
	*u = *req.URL
	u.Path = path
	u.RawPath = ""

	inner := req.WithContext(req.Context())
	inner.URL = u
	return inner
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case strings.Count(prefix, "/") != 1:
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
