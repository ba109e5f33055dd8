package router

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mabego/galeria/internal/auth"
)

const maxRedirects = 10

var (
	ErrNoRoute      = errors.New("no route matches path")
	ErrNoHistory    = errors.New("no history entry in that direction")
	ErrRedirectLoop = errors.New("too many guard redirects")
)

// Result describes a completed navigation.
type Result struct {
	EntryID    uuid.UUID
	Route      Route
	Scroll     Position
	Redirected bool
}

type entry struct {
	id     uuid.UUID
	route  Route
	scroll *Position
}

// Navigator models client-side navigation over a route Table: a history stack whose entries
// remember their scroll offset, with route guards evaluated on every attempt.
type Navigator struct {
	mu      sync.Mutex
	table   *Table
	storage auth.Storage
	entries []entry
	index   int
}

func NewNavigator(table *Table, storage auth.Storage) *Navigator {
	return &Navigator{table: table, storage: storage, index: -1}
}

// Push navigates to path, creating a new history entry and discarding any forward entries.
func (n *Navigator) Push(path string) (Result, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	route, redirected, err := n.resolve(path)
	if err != nil {
		return Result{}, err
	}

	e := entry{id: uuid.New(), route: route}
	n.entries = append(n.entries[:n.index+1], e)
	n.index = len(n.entries) - 1

	return Result{EntryID: e.id, Route: route, Scroll: ScrollBehavior(nil), Redirected: redirected}, nil
}

func (n *Navigator) Back() (Result, error) {
	return n.traverse(-1)
}

func (n *Navigator) Forward() (Result, error) {
	return n.traverse(1)
}

// Scroll records the offset of the current history entry.
func (n *Navigator) Scroll(pos Position) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.index < 0 {
		return
	}
	n.entries[n.index].scroll = &pos
}

// Current returns the route of the current history entry.
func (n *Navigator) Current() (Route, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.index < 0 {
		return Route{}, false
	}
	return n.entries[n.index].route, true
}

// AuthNavigator adapts the navigator for auth.Accessor. Navigation errors are dropped since
// the accessor only ever navigates to the login page.
func (n *Navigator) AuthNavigator() auth.Navigator {
	return auth.NavigatorFunc(func(path string) {
		_, _ = n.Push(path)
	})
}

func (n *Navigator) traverse(delta int) (Result, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	target := n.index + delta
	if target < 0 || target >= len(n.entries) {
		return Result{}, ErrNoHistory
	}

	e := n.entries[target]
	if e.route.Guarded() {
		if d := e.route.Guard(n.storage); !d.Allowed {
			route, _, err := n.resolve(d.Redirect)
			if err != nil {
				return Result{}, err
			}

			// The blocked entry is replaced by the redirect target, which has no saved offset.
			e = entry{id: uuid.New(), route: route}
			n.entries[target] = e
			n.index = target

			return Result{EntryID: e.id, Route: route, Scroll: ScrollBehavior(nil), Redirected: true}, nil
		}
	}

	n.index = target

	return Result{EntryID: e.id, Route: e.route, Scroll: ScrollBehavior(e.scroll)}, nil
}

// resolve looks up path and follows guard redirects.
func (n *Navigator) resolve(path string) (Route, bool, error) {
	redirected := false

	for hops := 0; hops <= maxRedirects; hops++ {
		route, ok := n.table.Lookup(path)
		if !ok {
			return Route{}, false, fmt.Errorf("%w: %s", ErrNoRoute, path)
		}

		if !route.Guarded() {
			return route, redirected, nil
		}

		d := route.Guard(n.storage)
		if d.Allowed {
			return route, redirected, nil
		}

		path = d.Redirect
		redirected = true
	}

	return Route{}, false, fmt.Errorf("%w: %s", ErrRedirectLoop, path)
}
