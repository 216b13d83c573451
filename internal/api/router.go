package api

import (
	"database/sql"
	"net/http"

	"github.com/mkeza/giftlist/internal/wishlist"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	service := wishlist.NewService(db)

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	profileHandler := &ProfileHandler{DB: db, Service: service}
	itemsHandler := &ItemsHandler{Service: service}
	reservationsHandler := &ReservationsHandler{Service: service}
	publicHandler := &PublicHandler{DB: db, Service: service}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: registration, login, shared wishlists, avatars.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/wishlist/{id}", publicHandler.Wishlist)
	mux.HandleFunc("GET /api/users/{id}/avatar", profileHandler.GetAvatar)

	// Session.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Profile.
	mux.Handle("GET /api/profile", authMW(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("PUT /api/profile", authMW(http.HandlerFunc(profileHandler.Update)))
	mux.Handle("DELETE /api/profile", authMW(http.HandlerFunc(profileHandler.Delete)))
	mux.Handle("PUT /api/profile/avatar", authMW(http.HandlerFunc(profileHandler.UploadAvatar)))

	// Own items.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))

	// Reservations: any authenticated visitor may reserve or cancel.
	mux.Handle("POST /api/items/{id}/reserve", authMW(http.HandlerFunc(reservationsHandler.Reserve)))
	mux.Handle("DELETE /api/items/{id}/reserve", authMW(http.HandlerFunc(reservationsHandler.Cancel)))
	mux.Handle("GET /api/reservations", authMW(http.HandlerFunc(reservationsHandler.ListMine)))

	return mux
}
