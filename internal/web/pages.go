package web

import (
	"log/slog"
	"net/http"

	"github.com/mzagar/vitrina/internal/model"
)

// HomePage handles GET /. The public page renders whatever the store
// returns; a failed load degrades to empty sections rather than an
// error page.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	products, err := s.Products.List(r.Context())
	if err != nil {
		slog.Error("listing products", "error", err)
	}
	services, err := s.Services.List(r.Context())
	if err != nil {
		slog.Error("listing services", "error", err)
	}

	s.Templates.Render(w, "home.html", &struct {
		PageData
		Products []model.Content
		Services []model.Content
	}{
		PageData: PageData{Title: "Vitrina"},
		Products: products,
		Services: services,
	})
}

// Dashboard handles GET /admin.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	products, err := s.Products.List(r.Context())
	if err != nil {
		slog.Error("listing products", "error", err)
	}
	services, err := s.Services.List(r.Context())
	if err != nil {
		slog.Error("listing services", "error", err)
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		ProductCount int
		ServiceCount int
	}{
		PageData:     PageData{Title: "Dashboard", User: claims},
		ProductCount: len(products),
		ServiceCount: len(services),
	})
}
