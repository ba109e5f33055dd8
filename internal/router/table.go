package router

import (
	"errors"
	"fmt"

	"github.com/mabego/galeria/internal/auth"
)

var ErrDuplicateRoute = errors.New("duplicate route")

// Route binds a path to a named view. Guard, when set, runs before the view is constructed.
type Route struct {
	Path  string
	Name  string
	View  string
	Guard auth.Guard
}

// Guarded reports whether the route carries a guard.
func (r Route) Guarded() bool {
	return r.Guard != nil
}

// Table is an immutable, ordered set of routes with unique paths and names.
type Table struct {
	routes []Route
	byPath map[string]int
	byName map[string]int
}

func New(routes ...Route) (*Table, error) {
	t := &Table{
		routes: make([]Route, 0, len(routes)),
		byPath: make(map[string]int, len(routes)),
		byName: make(map[string]int, len(routes)),
	}

	for _, r := range routes {
		if _, exists := t.byPath[r.Path]; exists {
			return nil, fmt.Errorf("%w: path %q", ErrDuplicateRoute, r.Path)
		}
		if _, exists := t.byName[r.Name]; exists {
			return nil, fmt.Errorf("%w: name %q", ErrDuplicateRoute, r.Name)
		}

		t.byPath[r.Path] = len(t.routes)
		t.byName[r.Name] = len(t.routes)
		t.routes = append(t.routes, r)
	}

	return t, nil
}

// MustNew is like New but panics on a duplicate route. It is intended for static tables.
func MustNew(routes ...Route) *Table {
	t, err := New(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Lookup(path string) (Route, bool) {
	i, ok := t.byPath[path]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

func (t *Table) ByName(name string) (Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Routes returns a copy of the routes in declaration order.
func (t *Table) Routes() []Route {
	routes := make([]Route, len(t.routes))
	copy(routes, t.routes)
	return routes
}
