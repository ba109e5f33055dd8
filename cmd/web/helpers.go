package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-playground/form/v4"
	"github.com/julienschmidt/httprouter"
	"github.com/justinas/nosurf"
	"github.com/mabego/galeria/internal/auth"
	"go.uber.org/zap"
)

var ErrNoTmpl = errors.New("template does not exist")

// serverError logs the error with a stack trace, then sends a generic 500 Internal Server Error response.
func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.WithOptions(zap.AddCallerSkip(1)).Error("server error",
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("uri", r.URL.RequestURI()),
		zap.Stack("stack"),
	)

	if app.debug {
		trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
		http.Error(w, trace, http.StatusInternalServerError)
		return
	}

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// clientError helper sends a specific status code and its description to the user.
func (app *application) clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter) {
	app.clientError(w, http.StatusNotFound)
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data *templateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.serverError(w, r, fmt.Errorf("%w: %s", ErrNoTmpl, page))
		return
	}

	// Render into a buffer first so a template error does not leave a half-written page.
	buf := new(bytes.Buffer)

	err := ts.ExecuteTemplate(buf, "base", data)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	w.WriteHeader(status)

	_, err = buf.WriteTo(w)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
}

func (app *application) newTemplateData(r *http.Request) *templateData {
	return &templateData{
		IsAuthenticated: app.isAuthenticated(r),
		CurrentYear:     time.Now().Year(),
		Flash:           app.sessionManager.PopString(r.Context(), "flash"),
		CSRFToken:       nosurf.Token(r),
		Categories:      Categories,
	}
}

func (app *application) decodePostForm(r *http.Request, dst any) error {
	err := r.ParseForm()
	if err != nil {
		return err
	}

	err = app.formDecoder.Decode(dst, r.PostForm)
	if err != nil {
		// A non-pointer dst is a programming error.
		var invalidDecoderError *form.InvalidDecoderError

		if errors.As(err, &invalidDecoderError) {
			panic(err)
		}

		return fmt.Errorf("form decoding error: %w", err)
	}

	return nil
}

// sessionStorage exposes the request's session through the auth storage port.
func (app *application) sessionStorage(r *http.Request) auth.Storage {
	return auth.NewSessionStorage(r.Context(), app.sessionManager)
}

// accessor returns the auth accessor mounted by the authenticate middleware, if any.
func (app *application) accessor(r *http.Request) (*auth.Accessor, bool) {
	a, ok := r.Context().Value(accessorContextKey).(*auth.Accessor)
	return a, ok
}

func (app *application) isAuthenticated(r *http.Request) bool {
	a, ok := app.accessor(r)
	if !ok {
		return false
	}

	return a.State().Value()
}

// itemID reads the ":id" route parameter. It returns false for anything but a positive integer.
func itemID(r *http.Request) (int, bool) {
	params := httprouter.ParamsFromContext(r.Context())

	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil || id < 1 {
		return 0, false
	}

	return id, true
}
