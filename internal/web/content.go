package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mzagar/vitrina/internal/model"
	"github.com/mzagar/vitrina/internal/store"
)

// contentPages serves the admin pages for one content kind. Products
// and services share the same templates bound to different repositories.
type contentPages struct {
	s        *Server
	repo     *store.Content
	label    string // "Product"
	plural   string // "Products"
	basePath string // "/admin/products"
}

type contentListData struct {
	PageData
	Label    string
	Plural   string
	BasePath string
	Items    []model.Content
}

type contentFormData struct {
	PageData
	Label    string
	Plural   string
	BasePath string
	Item     *model.Content
}

// List handles GET {basePath}.
func (p *contentPages) List(w http.ResponseWriter, r *http.Request) {
	items, err := p.repo.List(r.Context())
	if err != nil {
		slog.Error("listing content", "kind", p.label, "error", err)
	}

	p.s.Templates.Render(w, "content_list.html", &contentListData{
		PageData: PageData{Title: p.plural, User: GetWebClaims(r.Context())},
		Label:    p.label,
		Plural:   p.plural,
		BasePath: p.basePath,
		Items:    items,
	})
}

// NewForm handles GET {basePath}/new.
func (p *contentPages) NewForm(w http.ResponseWriter, r *http.Request) {
	p.s.Templates.Render(w, "content_form.html", &contentFormData{
		PageData: PageData{Title: "New " + p.label, User: GetWebClaims(r.Context())},
		Label:    p.label,
		Plural:   p.plural,
		BasePath: p.basePath,
	})
}

// CreateSubmit handles POST {basePath}.
func (p *contentPages) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	fields := store.Fields{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ImageURL:    r.FormValue("image"),
	}

	created, err := p.repo.Create(r.Context(), fields)
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		p.s.Templates.Render(w, "content_form.html", &contentFormData{
			PageData: PageData{Title: "New " + p.label, User: GetWebClaims(r.Context()), Error: verr.Error()},
			Label:    p.label,
			Plural:   p.plural,
			BasePath: p.basePath,
			Item: &model.Content{
				Title:       fields.Title,
				Description: fields.Description,
				ImageURL:    fields.ImageURL,
			},
		})
		return
	}
	if err != nil {
		slog.Error("creating content", "kind", p.label, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("content created", "kind", p.label, "id", created.ID, "user", GetWebClaims(r.Context()).Username)
	http.Redirect(w, r, p.basePath, http.StatusSeeOther)
}

// EditForm handles GET {basePath}/{id}.
func (p *contentPages) EditForm(w http.ResponseWriter, r *http.Request) {
	item, err := p.repo.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("getting content", "kind", p.label, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	p.s.Templates.Render(w, "content_form.html", &contentFormData{
		PageData: PageData{Title: "Edit " + p.label, User: GetWebClaims(r.Context())},
		Label:    p.label,
		Plural:   p.plural,
		BasePath: p.basePath,
		Item:     item,
	})
}

// UpdateSubmit handles POST {basePath}/{id}.
func (p *contentPages) UpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	title := r.FormValue("title")
	description := r.FormValue("description")
	image := r.FormValue("image")

	updated, err := p.repo.Update(r.Context(), id, store.Partial{
		Title:       &title,
		Description: &description,
		ImageURL:    &image,
	})
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		p.s.Templates.Render(w, "content_form.html", &contentFormData{
			PageData: PageData{Title: "Edit " + p.label, User: GetWebClaims(r.Context()), Error: verr.Error()},
			Label:    p.label,
			Plural:   p.plural,
			BasePath: p.basePath,
			Item: &model.Content{
				ID:          id,
				Title:       title,
				Description: description,
				ImageURL:    image,
			},
		})
		return
	case errors.Is(err, store.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		slog.Error("updating content", "kind", p.label, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("content updated", "kind", p.label, "id", updated.ID, "user", GetWebClaims(r.Context()).Username)
	http.Redirect(w, r, p.basePath, http.StatusSeeOther)
}

// DeleteSubmit handles POST {basePath}/{id}/delete. Removal is final
// and does not touch the image in object storage.
func (p *contentPages) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	deleted, err := p.repo.Delete(r.Context(), id)
	if err != nil {
		slog.Error("deleting content", "kind", p.label, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if deleted {
		slog.Info("content deleted", "kind", p.label, "id", id, "user", GetWebClaims(r.Context()).Username)
	}

	http.Redirect(w, r, p.basePath, http.StatusSeeOther)
}
