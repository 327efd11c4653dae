package api

import (
	"database/sql"
	"net/http"

	"github.com/mzagar/vitrina/internal/auth"
	"github.com/mzagar/vitrina/internal/model"
	"github.com/mzagar/vitrina/internal/storage"
	"github.com/mzagar/vitrina/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
// Reads are public; mutations check the session gate in-handler.
func NewRouter(db *sql.DB, tokens *auth.TokenService, creds auth.Credentials, objects storage.ObjectStore, secureCookies bool) http.Handler {
	mux := http.NewServeMux()

	gate := auth.NewGate(tokens)

	authHandler := &AuthHandler{Tokens: tokens, Creds: creds, Secure: secureCookies}
	productsHandler := &ContentHandler{Repo: store.NewProducts(db), Gate: gate, Label: model.KindProduct}
	servicesHandler := &ContentHandler{Repo: store.NewServices(db), Gate: gate, Label: model.KindService}
	uploadHandler := &UploadHandler{Gate: gate, Store: objects}

	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	mux.HandleFunc("GET /api/products", productsHandler.List)
	mux.HandleFunc("POST /api/products", productsHandler.Create)
	mux.HandleFunc("GET /api/products/{id}", productsHandler.Get)
	mux.HandleFunc("PUT /api/products/{id}", productsHandler.Update)
	mux.HandleFunc("DELETE /api/products/{id}", productsHandler.Delete)

	mux.HandleFunc("GET /api/services", servicesHandler.List)
	mux.HandleFunc("POST /api/services", servicesHandler.Create)
	mux.HandleFunc("GET /api/services/{id}", servicesHandler.Get)
	mux.HandleFunc("PUT /api/services/{id}", servicesHandler.Update)
	mux.HandleFunc("DELETE /api/services/{id}", servicesHandler.Delete)

	mux.HandleFunc("POST /api/upload", uploadHandler.Upload)

	return mux
}
