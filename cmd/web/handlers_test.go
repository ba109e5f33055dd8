package main

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPing(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.get(t, "/ping")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)
}

func TestPublicPages(t *testing.T) {
	app, items := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	tests := []struct {
		name     string
		urlPath  string
		wantBody string
	}{
		{name: "Home", urlPath: "/", wantBody: "Bienvenido a la galería"},
		{name: "Gallery", urlPath: "/galeria", wantBody: "Atardecer en la sierra"},
		{name: "Admin login", urlPath: "/admin/login", wantBody: `<form action="/admin/login" method="POST" novalidate>`},
		{name: "Privacy", urlPath: "/politica-privacidad", wantBody: "<h2>Política de privacidad</h2>"},
		{name: "Legal", urlPath: "/aviso-legal", wantBody: "<h2>Aviso legal</h2>"},
		{name: "Terms", urlPath: "/terminos-servicio", wantBody: "<h2>Términos del servicio</h2>"},
		{name: "Contact", urlPath: "/contacto", wantBody: "<h2>Contacto</h2>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, body := ts.get(t, tt.urlPath)

			assert.Equal(t, http.StatusOK, code)
			assert.Contains(t, body, tt.wantBody)
			assert.Contains(t, body, `<a href="/admin/login">Acceso</a>`)
		})
	}

	assert.True(t, items.Called("List"))
}

func TestNotFound(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.get(t, "/no-existe")

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not Found", body)
}

func TestAdminPanelGuard(t *testing.T) {
	t.Run("Unauthenticated", func(t *testing.T) {
		app, items := newTestApplication(t)
		ts := newTestServer(t, app.routes())

		code, headers, _ := ts.get(t, "/admin")

		assert.Equal(t, http.StatusSeeOther, code)
		assert.Equal(t, "/admin/login", headers.Get("Location"))
		assert.False(t, items.Called("List"))
	})

	t.Run("Authenticated", func(t *testing.T) {
		app, items := newTestApplication(t)
		ts := newTestServer(t, app.routes())
		ts.login(t)

		code, headers, body := ts.get(t, "/admin")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "no-store", headers.Get("Cache-Control"))
		assert.Contains(t, body, "<h2>Panel de administración</h2>")
		assert.Contains(t, body, "Cerrar sesión")
		assert.True(t, items.Called("List"))
	})
}

func TestAdminLoginPost(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, _, body := ts.get(t, "/admin/login")
	validCSRFToken := extractCSRFToken(t, body)

	const (
		validEmail    = "admin@example.com"
		validPassword = "pa$$word"
		formTag       = `<form action="/admin/login" method="POST" novalidate>`
	)

	tests := []struct {
		name         string
		email        string
		password     string
		csrfToken    string
		wantCode     int
		wantLocation string
		wantBody     string
	}{
		{
			name:      "Blank email",
			email:     "",
			password:  validPassword,
			csrfToken: validCSRFToken,
			wantCode:  http.StatusUnprocessableEntity,
			wantBody:  formTag,
		},
		{
			name:      "Invalid email",
			email:     "admin@",
			password:  validPassword,
			csrfToken: validCSRFToken,
			wantCode:  http.StatusUnprocessableEntity,
			wantBody:  "Debe ser una dirección de email válida",
		},
		{
			name:      "Blank password",
			email:     validEmail,
			password:  "",
			csrfToken: validCSRFToken,
			wantCode:  http.StatusUnprocessableEntity,
			wantBody:  formTag,
		},
		{
			name:      "Wrong password",
			email:     validEmail,
			password:  "wrong",
			csrfToken: validCSRFToken,
			wantCode:  http.StatusUnprocessableEntity,
			wantBody:  "Email o contraseña incorrectos",
		},
		{
			name:      "Invalid CSRF token",
			email:     validEmail,
			password:  validPassword,
			csrfToken: "wrongToken",
			wantCode:  http.StatusBadRequest,
		},
		{
			name:         "Valid",
			email:        validEmail,
			password:     validPassword,
			csrfToken:    validCSRFToken,
			wantCode:     http.StatusSeeOther,
			wantLocation: "/admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			form.Add("email", tt.email)
			form.Add("password", tt.password)
			form.Add("csrf_token", tt.csrfToken)

			code, headers, body := ts.postForm(t, "/admin/login", form)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, headers.Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Contains(t, body, tt.wantBody)
			}
		})
	}
}

func TestAdminLogoutPost(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	csrfToken := ts.login(t)

	form := url.Values{}
	form.Add("csrf_token", csrfToken)

	code, headers, _ := ts.postForm(t, "/admin/logout", form)
	assert.Equal(t, http.StatusSeeOther, code)
	assert.Equal(t, "/admin/login", headers.Get("Location"))

	code, headers, _ = ts.get(t, "/admin")
	assert.Equal(t, http.StatusSeeOther, code)
	assert.Equal(t, "/admin/login", headers.Get("Location"))

	// Logging out again is harmless and lands on the login page.
	_, _, body := ts.get(t, "/admin/login")
	assert.Contains(t, body, "Has cerrado la sesión")

	form.Set("csrf_token", extractCSRFToken(t, body))
	code, headers, _ = ts.postForm(t, "/admin/logout", form)
	assert.Equal(t, http.StatusSeeOther, code)
	assert.Equal(t, "/admin/login", headers.Get("Location"))
}

func TestItemActions(t *testing.T) {
	app, items := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	csrfToken := ts.login(t)

	tests := []struct {
		name         string
		urlPath      string
		form         url.Values
		wantCode     int
		wantLocation string
		wantBody     string
		wantCall     string
	}{
		{
			name:    "Create",
			urlPath: "/admin/items",
			form: url.Values{
				"title":    {"Marina"},
				"imageURL": {"https://cdn.example.com/marina.jpg"},
				"category": {"paisaje"},
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: "/admin",
			wantCall:     "Create",
		},
		{
			name:     "Create without title",
			urlPath:  "/admin/items",
			form:     url.Values{"imageURL": {"https://cdn.example.com/marina.jpg"}},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "Este campo no puede estar vacío",
		},
		{
			name:     "Create with relative image URL",
			urlPath:  "/admin/items",
			form:     url.Values{"title": {"Marina"}, "imageURL": {"/marina.jpg"}},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "Debe ser una URL http o https",
		},
		{
			name:    "Create with unknown category",
			urlPath: "/admin/items",
			form: url.Values{
				"title":    {"Marina"},
				"imageURL": {"https://cdn.example.com/marina.jpg"},
				"category": {"grabado"},
			},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "Debe ser una de las categorías disponibles",
		},
		{
			name:    "Update without title",
			urlPath: "/admin/items/1/update",
			form: url.Values{
				"imageURL": {"https://cdn.example.com/atardecer.jpg"},
				"category": {"retrato"},
			},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `<form action="/admin/items/1/update" method="POST" class="item-form" novalidate>`,
		},
		{
			name:    "Update",
			urlPath: "/admin/items/1/update",
			form: url.Values{
				"title":    {"Atardecer"},
				"imageURL": {"https://cdn.example.com/atardecer.jpg"},
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: "/admin",
			wantCall:     "Update",
		},
		{
			name:    "Update missing item",
			urlPath: "/admin/items/99/update",
			form: url.Values{
				"title":    {"Atardecer"},
				"imageURL": {"https://cdn.example.com/atardecer.jpg"},
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "Update bad id",
			urlPath:  "/admin/items/abc/update",
			form:     url.Values{},
			wantCode: http.StatusNotFound,
		},
		{
			name:         "Delete",
			urlPath:      "/admin/items/1/delete",
			form:         url.Values{},
			wantCode:     http.StatusSeeOther,
			wantLocation: "/admin",
			wantCall:     "Delete",
		},
		{
			name:     "Delete missing item",
			urlPath:  "/admin/items/99/delete",
			form:     url.Values{},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.form.Set("csrf_token", csrfToken)

			code, headers, body := ts.postForm(t, tt.urlPath, tt.form)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, headers.Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Contains(t, body, tt.wantBody)
			}
			if tt.wantCall != "" {
				assert.True(t, items.Called(tt.wantCall))
			}
		})
	}
}

func TestItemActionsRequireAdmin(t *testing.T) {
	app, items := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, _, body := ts.get(t, "/admin/login")

	form := url.Values{}
	form.Add("csrf_token", extractCSRFToken(t, body))

	code, headers, _ := ts.postForm(t, "/admin/items/1/delete", form)

	assert.Equal(t, http.StatusSeeOther, code)
	assert.Equal(t, "/admin/login", headers.Get("Location"))
	assert.False(t, items.Called("Delete"))
}

func TestItemEdit(t *testing.T) {
	app, items := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.login(t)

	tests := []struct {
		name     string
		urlPath  string
		wantCode int
		wantBody []string
	}{
		{
			name:     "Existing item",
			urlPath:  "/admin/items/1/edit",
			wantCode: http.StatusOK,
			wantBody: []string{
				`<form action="/admin/items/1/update" method="POST" class="item-form" novalidate>`,
				`value="Atardecer en la sierra"`,
				`<option value="paisaje" selected>paisaje</option>`,
			},
		},
		{
			name:     "Missing item",
			urlPath:  "/admin/items/99/edit",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "Bad id",
			urlPath:  "/admin/items/0/edit",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, body := ts.get(t, tt.urlPath)

			assert.Equal(t, tt.wantCode, code)
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
		})
	}

	assert.True(t, items.Called("Get"))
}

func TestItemEditRequiresAdmin(t *testing.T) {
	app, items := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, headers, _ := ts.get(t, "/admin/items/1/edit")

	assert.Equal(t, http.StatusSeeOther, code)
	assert.Equal(t, "/admin/login", headers.Get("Location"))
	assert.False(t, items.Called("Get"))
}
