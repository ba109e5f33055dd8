package main

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/mabego/galeria/internal/auth"
	"github.com/mabego/galeria/internal/router"
	"github.com/mabego/galeria/ui"
)

// viewHandlers maps every view of the site route table to its handler.
func (app *application) viewHandlers() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		router.ViewHome:               app.home,
		router.ViewGallery:            app.gallery,
		router.ViewAdminLogin:         app.adminLogin,
		router.ViewAdminPanel:         app.adminPanel,
		router.ViewPoliticaPrivacidad: app.page(router.ViewPoliticaPrivacidad),
		router.ViewAvisoLegal:         app.page(router.ViewAvisoLegal),
		router.ViewTerminosServicio:   app.page(router.ViewTerminosServicio),
		router.ViewContacto:           app.page(router.ViewContacto),
	}
}

func (app *application) routes() http.Handler {
	mux := httprouter.New()

	// Unmatched paths get the plain 404; there is no fallback view.
	mux.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.notFound(w)
	})

	fileServer := http.FileServer(http.FS(ui.Files))
	mux.Handler(http.MethodGet, "/static/*filepath", fileServer)

	mux.HandlerFunc(http.MethodGet, "/ping", ping)

	// An unprotected middleware chain using alice, specific to 'dynamic' application routes.
	dynamic := alice.New(app.sessionManager.LoadAndSave, noSurf, app.authenticate)

	// Every page of the route table is served on GET. Guarded routes get their guard appended to the chain.
	views := app.viewHandlers()
	for _, route := range app.site.Routes() {
		handler, ok := views[route.View]
		if !ok {
			panic(fmt.Sprintf("no handler for view %q of route %s", route.View, route.Path))
		}

		chain := dynamic
		if route.Guarded() {
			chain = dynamic.Append(app.guard(route.Guard))
		}

		mux.Handler(http.MethodGet, route.Path, chain.ThenFunc(handler))
	}

	mux.Handler(http.MethodPost, router.PathAdminLogin, dynamic.ThenFunc(app.adminLoginPost))

	// Logout stays outside the guard so that it also answers clients that are already logged out.
	mux.Handler(http.MethodPost, "/admin/logout", dynamic.ThenFunc(app.adminLogoutPost))

	protected := dynamic.Append(app.guard(auth.AdminGuard))

	mux.Handler(http.MethodPost, "/admin/items", protected.ThenFunc(app.itemCreatePost))
	mux.Handler(http.MethodGet, "/admin/items/:id/edit", protected.ThenFunc(app.itemEdit))
	mux.Handler(http.MethodPost, "/admin/items/:id/update", protected.ThenFunc(app.itemUpdatePost))
	mux.Handler(http.MethodPost, "/admin/items/:id/delete", protected.ThenFunc(app.itemDeletePost))

	// A middleware chain using alice containing the 'standard' middleware used for every application request.
	standard := alice.New(app.recoverPanic, app.logRequest, secureHeaders)

	return standard.Then(mux)
}
