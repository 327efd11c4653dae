package web

import (
	"database/sql"
	"net/http"

	"github.com/mzagar/vitrina/internal/auth"
	"github.com/mzagar/vitrina/internal/model"
	"github.com/mzagar/vitrina/internal/store"
	webembed "github.com/mzagar/vitrina/web"
)

// NewRouter creates the page router: the public site plus the admin
// area behind the session route filter.
func NewRouter(db *sql.DB, tokens *auth.TokenService, creds auth.Credentials, secureCookies bool) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Products:  store.NewProducts(db),
		Services:  store.NewServices(db),
		Templates: templates,
		Tokens:    tokens,
		Creds:     creds,
		Gate:      auth.NewGate(tokens),
		Secure:    secureCookies,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public site.
	mux.HandleFunc("GET /{$}", s.HomePage)

	// Admin login is the only admin path outside the filter.
	mux.HandleFunc("GET /admin/login", s.LoginPage)
	mux.HandleFunc("POST /admin/login", s.LoginSubmit)
	mux.HandleFunc("POST /admin/logout", s.Logout)

	filter := s.RequireAdmin

	mux.Handle("GET /admin", filter(http.HandlerFunc(s.Dashboard)))
	mux.Handle("GET /admin/{$}", filter(http.HandlerFunc(s.Dashboard)))

	products := &contentPages{s: s, repo: s.Products, label: model.KindProduct, plural: "Products", basePath: "/admin/products"}
	services := &contentPages{s: s, repo: s.Services, label: model.KindService, plural: "Services", basePath: "/admin/services"}

	for _, p := range []*contentPages{products, services} {
		mux.Handle("GET "+p.basePath, filter(http.HandlerFunc(p.List)))
		mux.Handle("POST "+p.basePath, filter(http.HandlerFunc(p.CreateSubmit)))
		mux.Handle("GET "+p.basePath+"/new", filter(http.HandlerFunc(p.NewForm)))
		mux.Handle("GET "+p.basePath+"/{id}", filter(http.HandlerFunc(p.EditForm)))
		mux.Handle("POST "+p.basePath+"/{id}", filter(http.HandlerFunc(p.UpdateSubmit)))
		mux.Handle("POST "+p.basePath+"/{id}/delete", filter(http.HandlerFunc(p.DeleteSubmit)))
	}

	return mux, nil
}
