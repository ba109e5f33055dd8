package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mabego/galeria/internal/auth"
	"github.com/mabego/galeria/internal/models"
	"github.com/mabego/galeria/internal/router"
	"github.com/mabego/galeria/internal/validator"
)

const (
	TitleMaxChars       = 100
	DescriptionMaxChars = 1000
)

// viewItemEdit is the admin form for a single item. It is served behind the admin guard and is not a page
// of the site route table.
const viewItemEdit = "edit.page.tmpl"

// Categories lists the values accepted for an item's category. An empty category is also accepted.
var Categories = []string{"paisaje", "retrato", "abstracto", "bodegón", "escultura"}

// The struct tags tell the go-playground/form decoder how to map HTML form values into the different struct fields.
// The struct tag `form:"-"` tells the decoder to completely ignore a field during decoding.
type adminLoginForm struct {
	Email               string `form:"email"`
	Password            string `form:"password"`
	validator.Validator `form:"-"`
}

type itemForm struct {
	Title               string `form:"title"`
	Description         string `form:"description"`
	ImageURL            string `form:"imageURL"`
	Category            string `form:"category"`
	validator.Validator `form:"-"`
}

func (f *itemForm) validate() {
	f.CheckField(validator.NotBlank(f.Title), "title", "Este campo no puede estar vacío")
	f.CheckField(validator.MaxChars(f.Title, TitleMaxChars), "title",
		"Este campo no puede superar los 100 caracteres")
	f.CheckField(validator.MaxChars(f.Description, DescriptionMaxChars), "description",
		"Este campo no puede superar los 1000 caracteres")
	f.CheckField(validator.NotBlank(f.ImageURL), "imageURL", "Este campo no puede estar vacío")
	f.CheckField(validator.WebURL(f.ImageURL), "imageURL", "Debe ser una URL http o https")
	f.CheckField(f.Category == "" || validator.PermittedValue(f.Category, Categories...), "category",
		"Debe ser una de las categorías disponibles")
}

func (f *itemForm) input() models.ItemInput {
	return models.ItemInput{
		Title:       f.Title,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		Category:    f.Category,
	}
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, router.ViewHome, app.newTemplateData(r))
}

// page renders a view that needs no data beyond the common template data.
func (app *application) page(view string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app.render(w, r, http.StatusOK, view, app.newTemplateData(r))
	}
}

func (app *application) gallery(w http.ResponseWriter, r *http.Request) {
	items, err := app.items.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Items = items

	app.render(w, r, http.StatusOK, router.ViewGallery, data)
}

func (app *application) adminLogin(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)
	data.Form = adminLoginForm{}
	app.render(w, r, http.StatusOK, router.ViewAdminLogin, data)
}

func (app *application) adminLoginPost(w http.ResponseWriter, r *http.Request) {
	var form adminLoginForm

	err := app.decodePostForm(r, &form)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	form.CheckField(validator.NotBlank(form.Email), "email", "Este campo no puede estar vacío")
	form.CheckField(validator.Matches(form.Email, validator.EmailRX), "email",
		"Debe ser una dirección de email válida")
	form.CheckField(validator.NotBlank(form.Password), "password", "Este campo no puede estar vacío")

	if !form.Valid() {
		data := app.newTemplateData(r)
		data.Form = form
		app.render(w, r, http.StatusUnprocessableEntity, router.ViewAdminLogin, data)
		return
	}

	id, err := app.admins.Authenticate(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			form.AddNonFieldError("Email o contraseña incorrectos")
			data := app.newTemplateData(r)
			data.Form = form
			app.render(w, r, http.StatusUnprocessableEntity, router.ViewAdminLogin, data)
		} else {
			app.serverError(w, r, err)
		}
		return
	}

	// Change the session ID whenever the authentication state changes.
	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	// The admin ID lets authenticate drop the flag if this account is removed while the session lives.
	app.sessionManager.Put(r.Context(), adminIDSessionKey, id)
	auth.Login(app.sessionStorage(r))

	http.Redirect(w, r, router.PathAdminPanel, http.StatusSeeOther)
}

func (app *application) adminLogoutPost(w http.ResponseWriter, r *http.Request) {
	accessor, ok := app.accessor(r)
	if !ok {
		app.serverError(w, r, errors.New("no auth accessor mounted"))
		return
	}

	err := app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Remove(r.Context(), adminIDSessionKey)
	app.sessionManager.Put(r.Context(), "flash", "Has cerrado la sesión")

	// Logout clears the flag and redirects to the login page.
	accessor.Logout()
}

func (app *application) adminPanel(w http.ResponseWriter, r *http.Request) {
	items, err := app.items.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Items = items
	data.Form = itemForm{}

	app.render(w, r, http.StatusOK, router.ViewAdminPanel, data)
}

func (app *application) itemEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		app.notFound(w)
		return
	}

	item, err := app.items.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, r, err)
		}
		return
	}

	data := app.newTemplateData(r)
	data.Item = item
	data.Form = itemForm{
		Title:       item.Title,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Category:    item.Category,
	}

	app.render(w, r, http.StatusOK, viewItemEdit, data)
}

func (app *application) itemCreatePost(w http.ResponseWriter, r *http.Request) {
	var form itemForm

	err := app.decodePostForm(r, &form)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	form.validate()

	// Redisplay the panel with the submitted values and a 422 status code.
	if !form.Valid() {
		items, err := app.items.List(r.Context())
		if err != nil {
			app.serverError(w, r, err)
			return
		}

		data := app.newTemplateData(r)
		data.Items = items
		data.Form = form
		app.render(w, r, http.StatusUnprocessableEntity, router.ViewAdminPanel, data)
		return
	}

	item, err := app.items.Create(r.Context(), form.input())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), "flash", fmt.Sprintf("Obra %q publicada", item.Title))

	http.Redirect(w, r, router.PathAdminPanel, http.StatusSeeOther)
}

func (app *application) itemUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		app.notFound(w)
		return
	}

	var form itemForm

	err := app.decodePostForm(r, &form)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	form.validate()

	// Redisplay the edit form with the submitted values. Only the ID of the stored item is known here.
	if !form.Valid() {
		data := app.newTemplateData(r)
		data.Item = &models.Item{ID: id}
		data.Form = form
		app.render(w, r, http.StatusUnprocessableEntity, viewItemEdit, data)
		return
	}

	_, err = app.items.Update(r.Context(), id, form.input())
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, r, err)
		}
		return
	}

	app.sessionManager.Put(r.Context(), "flash", "Obra actualizada")

	http.Redirect(w, r, router.PathAdminPanel, http.StatusSeeOther)
}

func (app *application) itemDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		app.notFound(w)
		return
	}

	err := app.items.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, r, err)
		}
		return
	}

	app.sessionManager.Put(r.Context(), "flash", "Obra eliminada")

	http.Redirect(w, r, router.PathAdminPanel, http.StatusSeeOther)
}

func ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodGet {
		fmt.Fprintln(w, "OK")
	}
}
