package web

import (
	"log/slog"
	"net/http"

	"github.com/mzagar/vitrina/internal/auth"
)

// LoginPage handles GET /admin/login. An already-authenticated admin is
// sent straight to the dashboard.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Gate.Authorize(r); err == nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	s.Templates.Render(w, "login.html", &PageData{Title: "Admin Login"})
}

// LoginSubmit handles POST /admin/login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if !s.Creds.Verify(username, password) {
		slog.Warn("login failed", "username", username, "remote", r.RemoteAddr)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Admin Login",
			Error: "Invalid credentials",
		})
		return
	}

	token, err := s.Tokens.Issue(username, auth.RoleAdmin)
	if err != nil {
		slog.Error("issuing token", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Admin Login",
			Error: "Login failed, please try again",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.Tokens.Expiry().Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteStrictMode,
	})

	slog.Info("admin logged in", "username", username)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout handles POST /admin/logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
