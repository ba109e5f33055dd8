package auth

// Decision is the outcome of a guard: either allow the pending navigation or redirect it.
type Decision struct {
	Allowed  bool
	Redirect string
}

var Allow = Decision{Allowed: true}

func RedirectTo(path string) Decision {
	return Decision{Redirect: path}
}

// Guard decides whether a navigation may proceed. Guards are evaluated on every attempt.
type Guard func(Storage) Decision

// Decide maps a stored flag value to a guard decision. Anything but FlagValue redirects to
// the login page.
func Decide(value string) Decision {
	if IsSet(value) {
		return Allow
	}
	return RedirectTo(LoginPath)
}

// AdminGuard reads the flag from storage and decides with Decide.
func AdminGuard(s Storage) Decision {
	v, _ := s.Get(FlagKey)
	return Decide(v)
}
