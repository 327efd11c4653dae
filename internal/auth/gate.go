package auth

import (
	"errors"
	"net/http"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "admin_auth_token"

// Session gate denials, in addition to the token failures.
var (
	ErrNoToken  = errors.New("no authentication token")
	ErrNotAdmin = errors.New("not an admin user")
)

// Gate decides whether a request carries a valid admin session. The
// decision is stateless: a pure function of the cookie and the clock,
// re-evaluated on every request.
type Gate struct {
	Tokens *TokenService
}

// NewGate creates a session gate backed by the given token service.
func NewGate(tokens *TokenService) *Gate {
	return &Gate{Tokens: tokens}
}

// Authorize extracts the session token from the request cookie and
// verifies it. Returns the claims on success, or ErrNoToken,
// ErrTokenExpired, ErrTokenInvalid or ErrNotAdmin on denial.
func (g *Gate) Authorize(r *http.Request) (*Claims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoToken
	}

	claims, err := g.Tokens.Verify(cookie.Value)
	if err != nil {
		return nil, err
	}

	if claims.Role != RoleAdmin {
		return nil, ErrNotAdmin
	}

	return claims, nil
}
