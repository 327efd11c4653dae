package api

import (
	"log/slog"
	"net/http"

	"github.com/mzagar/vitrina/internal/auth"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	Tokens *auth.TokenService
	Creds  auth.Credentials
	// Secure marks the session cookie Secure; set in production.
	Secure bool
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Login handles POST /api/auth/login. Credentials are checked against
// the configured admin account; on success an HTTP-only session cookie
// is set.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonResponse(w, http.StatusBadRequest, authResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if !h.Creds.Verify(req.Username, req.Password) {
		slog.Warn("login failed", "username", req.Username, "remote", r.RemoteAddr)
		jsonResponse(w, http.StatusUnauthorized, authResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	token, err := h.Tokens.Issue(req.Username, auth.RoleAdmin)
	if err != nil {
		slog.Error("issuing token", "error", err)
		jsonResponse(w, http.StatusInternalServerError, authResponse{Success: false, Message: "Internal server error"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Tokens.Expiry().Seconds()),
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteStrictMode,
	})

	slog.Info("admin logged in", "username", req.Username)
	jsonResponse(w, http.StatusOK, authResponse{Success: true, Message: "Login successful"})
}

// Logout handles POST /api/auth/logout. The cookie is cleared
// client-side only: the signed token stays valid until expiry, there is
// no revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteStrictMode,
	})

	jsonResponse(w, http.StatusOK, authResponse{Success: true, Message: "Logged out successfully"})
}
