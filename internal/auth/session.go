package auth

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// SessionStorage adapts the session bound to a request context to the Storage port.
//
// scs panics when the context carries no session data, so a SessionStorage must only be used
// behind SessionManager.LoadAndSave.
type SessionStorage struct {
	sm  *scs.SessionManager
	ctx context.Context
}

func NewSessionStorage(ctx context.Context, sm *scs.SessionManager) *SessionStorage {
	return &SessionStorage{sm: sm, ctx: ctx}
}

func (s *SessionStorage) Get(key string) (string, bool) {
	if !s.sm.Exists(s.ctx, key) {
		return "", false
	}

	// GetString returns the zero value for non-string data, which Decide treats as unset.
	return s.sm.GetString(s.ctx, key), true
}

func (s *SessionStorage) Set(key, value string) {
	s.sm.Put(s.ctx, key, value)
}

func (s *SessionStorage) Remove(key string) {
	s.sm.Remove(s.ctx, key)
}
