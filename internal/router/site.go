package router

import "github.com/mabego/galeria/internal/auth"

// Page template names for the site's views.
const (
	ViewHome               = "home.page.tmpl"
	ViewGallery            = "gallery.page.tmpl"
	ViewAdminLogin         = "login.page.tmpl"
	ViewAdminPanel         = "admin.page.tmpl"
	ViewPoliticaPrivacidad = "privacy.page.tmpl"
	ViewAvisoLegal         = "legal.page.tmpl"
	ViewTerminosServicio   = "terms.page.tmpl"
	ViewContacto           = "contact.page.tmpl"
)

const (
	PathHome               = "/"
	PathGallery            = "/galeria"
	PathAdminLogin         = auth.LoginPath
	PathAdminPanel         = "/admin"
	PathPoliticaPrivacidad = "/politica-privacidad"
	PathAvisoLegal         = "/aviso-legal"
	PathTerminosServicio   = "/terminos-servicio"
	PathContacto           = "/contacto"
)

// Site returns the site's route table. Only the admin panel is guarded.
func Site() *Table {
	return MustNew(
		Route{Path: PathHome, Name: "Home", View: ViewHome},
		Route{Path: PathGallery, Name: "Gallery", View: ViewGallery},
		Route{Path: PathAdminLogin, Name: "AdminLogin", View: ViewAdminLogin},
		Route{Path: PathAdminPanel, Name: "AdminPanel", View: ViewAdminPanel, Guard: auth.AdminGuard},
		Route{Path: PathPoliticaPrivacidad, Name: "PoliticaPrivacidad", View: ViewPoliticaPrivacidad},
		Route{Path: PathAvisoLegal, Name: "AvisoLegal", View: ViewAvisoLegal},
		Route{Path: PathTerminosServicio, Name: "TerminosServicio", View: ViewTerminosServicio},
		Route{Path: PathContacto, Name: "Contacto", View: ViewContacto},
	)
}
