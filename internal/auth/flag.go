package auth

import "sync"

const (
	// FlagKey is the storage key of the admin authentication flag.
	FlagKey = "isAdminAuthenticated"

	// FlagValue is the only stored value that counts as authenticated.
	FlagValue = "true"

	// LoginPath is where unauthenticated or logged out clients are sent.
	LoginPath = "/admin/login"
)

// Navigator moves the client to another path.
type Navigator interface {
	Push(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Push(path string) { f(path) }

// State holds the in-memory mirror of the auth flag. Only an Accessor updates it,
// on Mount/Check and on Logout.
type State struct {
	mu        sync.Mutex
	value     bool
	nextID    int
	listeners map[int]func(bool)
}

func (s *State) Value() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.value
}

// Subscribe registers fn to be called with the new value on every update.
// The returned function removes the subscription.
func (s *State) Subscribe(fn func(bool)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listeners == nil {
		s.listeners = make(map[int]func(bool))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *State) set(v bool) {
	s.mu.Lock()
	s.value = v
	listeners := make([]func(bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}

// Accessor reads and clears the auth flag and keeps State in sync with it.
type Accessor struct {
	storage Storage
	nav     Navigator
	state   *State
}

func NewAccessor(storage Storage, nav Navigator) *Accessor {
	return &Accessor{storage: storage, nav: nav, state: &State{}}
}

// State returns the observable mirror of the flag.
func (a *Accessor) State() *State {
	return a.state
}

// Mount synchronizes the mirror once when the accessor is attached. Later changes to the
// underlying storage are not observed until the next Check.
func (a *Accessor) Mount() bool {
	return a.Check()
}

// Check reports whether the stored flag is exactly FlagValue and updates the mirror.
func (a *Accessor) Check() bool {
	v, _ := a.storage.Get(FlagKey)
	ok := IsSet(v)
	a.state.set(ok)
	return ok
}

// Logout clears the flag and navigates to the login page. It is safe to call when already
// logged out.
func (a *Accessor) Logout() {
	a.storage.Remove(FlagKey)
	a.state.set(false)
	a.nav.Push(LoginPath)
}

// Login stores the flag. Credentials are checked by the caller.
func Login(storage Storage) {
	storage.Set(FlagKey, FlagValue)
}

// IsSet reports whether a stored flag value grants admin access.
func IsSet(value string) bool {
	return value == FlagValue
}
