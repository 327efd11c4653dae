package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func requestWithToken(token string) *http.Request {
	r := httptest.NewRequest("GET", "/admin/products", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	return r
}

func TestGateAllowsAdmin(t *testing.T) {
	svc := NewTokenService("gate-secret", 0)
	gate := NewGate(svc)

	token, _ := svc.Issue("admin", RoleAdmin)
	claims, err := gate.Authorize(requestWithToken(token))
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("expected username 'admin', got %q", claims.Username)
	}
}

func TestGateDeniesMissingToken(t *testing.T) {
	gate := NewGate(NewTokenService("gate-secret", 0))

	_, err := gate.Authorize(requestWithToken(""))
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestGateDeniesNonAdmin(t *testing.T) {
	svc := NewTokenService("gate-secret", 0)
	gate := NewGate(svc)

	token, _ := svc.Issue("someone", "editor")
	_, err := gate.Authorize(requestWithToken(token))
	if !errors.Is(err, ErrNotAdmin) {
		t.Errorf("expected ErrNotAdmin, got %v", err)
	}
}

func TestGateDeniesExpiredToken(t *testing.T) {
	issuer := NewTokenService("gate-secret", -time.Minute)
	gate := NewGate(NewTokenService("gate-secret", 0))

	token, _ := issuer.Issue("admin", RoleAdmin)
	_, err := gate.Authorize(requestWithToken(token))
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestGateDeniesForgedToken(t *testing.T) {
	forger := NewTokenService("other-secret", 0)
	gate := NewGate(NewTokenService("gate-secret", 0))

	token, _ := forger.Issue("admin", RoleAdmin)
	_, err := gate.Authorize(requestWithToken(token))
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestCredentialsPlaintext(t *testing.T) {
	creds := Credentials{Username: "admin", Password: "s3cret"}

	if !creds.Verify("admin", "s3cret") {
		t.Error("expected valid credentials to verify")
	}
	if creds.Verify("admin", "wrong") {
		t.Error("expected wrong password to fail")
	}
	if creds.Verify("someone", "s3cret") {
		t.Error("expected wrong username to fail")
	}
}

func TestCredentialsBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	creds := Credentials{Username: "admin", PasswordHash: string(hash)}

	if !creds.Verify("admin", "s3cret") {
		t.Error("expected valid credentials to verify")
	}
	if creds.Verify("admin", "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestCredentialsUnconfigured(t *testing.T) {
	if (Credentials{}).Verify("", "") {
		t.Error("expected unconfigured credentials to deny everything")
	}
}
