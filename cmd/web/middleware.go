package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/justinas/alice"
	"github.com/justinas/nosurf"
	"github.com/mabego/galeria/internal/auth"
	"go.uber.org/zap"
)

var ErrRecovered = errors.New("recovered")

// adminIDSessionKey holds the ID of the admin who set the auth flag.
const adminIDSessionKey = "authenticatedAdminID"

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Gallery images are served from the API's CDN, so img-src also allows any https origin.
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; img-src 'self' https: data:; style-src 'self' fonts.googleapis.com; font-src fonts.gstatic.com")
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")

		// Call the next handler in the chain.
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.logger.Info("request",
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("proto", r.Proto),
			zap.String("method", r.Method),
			zap.String("uri", r.URL.RequestURI()),
		)
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A deferred function will run in the event of a panic as Go unwinds the stack.
		defer func() {
			// The builtin recover function checks if there has been a panic or not.
			// A session read outside LoadAndSave panics in scs and ends up here as a 500.
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, fmt.Errorf("%w: %s", ErrRecovered, err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// guard runs g before the wrapped handler on every request. A redirect decision ends the chain, so the
// guarded view is never built.
func (app *application) guard(g auth.Guard) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The decision is made fresh from the session each time; nothing is cached between requests.
			decision := g(app.sessionStorage(r))
			if !decision.Allowed {
				// Return from the middleware chain so that no subsequent handlers are executed.
				http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
				return
			}

			// Set the "Cache-Control: no-store" header so that guarded pages are not stored
			// in the user's browser cache or any other intermediary cache.
			w.Header().Add("Cache-Control", "no-store")

			next.ServeHTTP(w, r)
		})
	}
}

func noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{
		Path:     "/",
		Secure:   true, // false to deploy without an SSL/TLS certificate
		HttpOnly: true,
	})

	return csrfHandler
}

// authenticate mounts an auth.Accessor for the request. Its mirror of the flag is synchronized once here
// and read by templates; its navigation redirects the current response.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// GetInt returns 0 when no admin ID is in the session. A flag left behind by an admin account
		// that has since been removed is cleared before the accessor reads it.
		if id := app.sessionManager.GetInt(r.Context(), adminIDSessionKey); id != 0 {
			exists, err := app.admins.Exists(id)
			if err != nil {
				app.serverError(w, r, err)
				return
			}

			if !exists {
				app.sessionManager.Remove(r.Context(), adminIDSessionKey)
				app.sessionManager.Remove(r.Context(), auth.FlagKey)
			}
		}

		// req is assigned below, before any handler can trigger a navigation.
		var req *http.Request

		accessor := auth.NewAccessor(app.sessionStorage(r), auth.NavigatorFunc(func(path string) {
			http.Redirect(w, req, path, http.StatusSeeOther)
		}))
		accessor.Mount()

		// Create a copy of the request carrying the mounted accessor in its context.
		req = r.WithContext(context.WithValue(r.Context(), accessorContextKey, accessor))

		next.ServeHTTP(w, req)
	})
}
