package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/mzagar/vitrina/internal/auth"
)

type webContextKey string

const webClaimsKey webContextKey = "webclaims"

// RequireAdmin is the route filter in front of every admin page except
// the login page. The session check is stateless and runs on every
// request; denied traffic is redirected to the login page before any
// handler sees it.
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.Gate.Authorize(r)
		if err != nil {
			// Drop stale or forged cookies so the browser stops
			// presenting them.
			if !errors.Is(err, auth.ErrNoToken) {
				s.clearSessionCookie(w)
			}
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), webClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetWebClaims retrieves the session claims from the request context.
func GetWebClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(webClaimsKey).(*auth.Claims)
	return claims
}

// clearSessionCookie clears the session cookie with consistent attributes.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
