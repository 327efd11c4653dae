package web

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mzagar/vitrina/internal/auth"
	"github.com/mzagar/vitrina/internal/db"
	"github.com/mzagar/vitrina/internal/store"
)

const (
	testUsername = "admin"
	testPassword = "test-password"
)

func newTestRouter(t *testing.T) (http.Handler, *sql.DB, *auth.TokenService) {
	t.Helper()

	database := db.NewTestDB(t)
	tokens := auth.NewTokenService("test-secret-key-for-web-tests", time.Hour)
	creds := auth.Credentials{Username: testUsername, Password: testPassword}

	router, err := NewRouter(database, tokens, creds, false)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	return router, database, tokens
}

func sessionCookie(t *testing.T, tokens *auth.TokenService) *http.Cookie {
	t.Helper()

	token, err := tokens.Issue(testUsername, auth.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHomePagePublic(t *testing.T) {
	router, database, _ := newTestRouter(t)

	products := store.NewProducts(database)
	if _, err := products.Create(context.Background(), store.Fields{
		Title:       "Oak Table",
		Description: "Solid oak dining table",
		ImageURL:    "/uploads/oak.jpg",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); !strings.Contains(body, "Oak Table") {
		t.Errorf("home page does not list the created product")
	}
}

func TestAdminRedirectsWithoutSession(t *testing.T) {
	router, _, _ := newTestRouter(t)

	paths := []string{
		"/admin",
		"/admin/products",
		"/admin/products/new",
		"/admin/services",
	}

	for _, path := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusSeeOther {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusSeeOther)
		}
		if loc := rec.Header().Get("Location"); loc != "/admin/login" {
			t.Errorf("GET %s redirects to %q, want /admin/login", path, loc)
		}
	}
}

func TestForgedSessionClearedAndRedirected(t *testing.T) {
	router, _, _ := newTestRouter(t)

	otherTokens := auth.NewTokenService("some-entirely-different-secret", time.Hour)
	forged, err := otherTokens.Issue(testUsername, auth.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: forged})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Errorf("forged session cookie was not cleared")
	}
}

func TestLoginFlow(t *testing.T) {
	router, _, _ := newTestRouter(t)

	// Wrong password re-renders the form with an error, no cookie.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/admin/login", url.Values{
		"username": {testUsername},
		"password": {"wrong"},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("failed login status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Errorf("failed login does not show the error message")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Errorf("failed login set a cookie")
	}

	// Correct credentials set the session cookie and redirect.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/admin/login", url.Values{
		"username": {testUsername},
		"password": {testPassword},
	}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("login redirects to %q, want /admin", loc)
	}

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatalf("login did not set a session cookie")
	}
	if !session.HttpOnly {
		t.Errorf("session cookie is not HttpOnly")
	}

	// The cookie opens the admin area.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(session)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("GET /admin with session status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestLoginPageRedirectsWhenAuthenticated(t *testing.T) {
	router, _, tokens := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req.AddCookie(sessionCookie(t, tokens))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("redirects to %q, want /admin", loc)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	router, _, tokens := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(sessionCookie(t, tokens))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Errorf("logout did not clear the session cookie")
	}
}

func TestContentPagesCRUD(t *testing.T) {
	router, database, tokens := newTestRouter(t)
	session := sessionCookie(t, tokens)

	// Create through the form.
	req := postForm("/admin/products", url.Values{
		"title":       {"Walnut Shelf"},
		"description": {"Wall-mounted walnut shelf"},
		"image":       {"/uploads/shelf.jpg"},
	})
	req.AddCookie(session)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	products := store.NewProducts(database)
	items, err := products.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 || items[0].Title != "Walnut Shelf" {
		t.Fatalf("created product not found in store, got %+v", items)
	}
	id := items[0].ID

	// The list page shows it.
	req = httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.AddCookie(session)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Walnut Shelf") {
		t.Errorf("list page does not show the product")
	}

	// Update through the edit form.
	req = postForm("/admin/products/"+id, url.Values{
		"title":       {"Walnut Shelf XL"},
		"description": {"Wider wall-mounted walnut shelf"},
		"image":       {"/uploads/shelf.jpg"},
	})
	req.AddCookie(session)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	got, err := products.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Walnut Shelf XL" {
		t.Errorf("title after update = %q, want %q", got.Title, "Walnut Shelf XL")
	}

	// Delete.
	req = postForm("/admin/products/"+id+"/delete", url.Values{})
	req.AddCookie(session)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if _, err := products.Get(context.Background(), id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestCreateFormValidation(t *testing.T) {
	router, database, tokens := newTestRouter(t)

	req := postForm("/admin/services", url.Values{
		"title":       {""},
		"description": {"missing a title"},
		"image":       {"/uploads/x.jpg"},
	})
	req.AddCookie(sessionCookie(t, tokens))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (re-rendered form)", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "title must not be empty") {
		t.Errorf("validation error not shown on the form")
	}

	items, err := store.NewServices(database).List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("invalid submission created a record")
	}
}

func TestEditFormUnknownID(t *testing.T) {
	router, _, tokens := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/products/no-such-id", nil)
	req.AddCookie(sessionCookie(t, tokens))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
