package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/micJ-r/ecommerce-app/internal/auth"
	"github.com/micJ-r/ecommerce-app/internal/cart"
	"github.com/micJ-r/ecommerce-app/internal/repository"
)

// RouterDeps carries everything the router needs to assemble the API.
type RouterDeps struct {
	Tokens  *auth.Manager
	Users   repository.UserRepository
	Carts   cart.Store
	Catalog Catalog
	Orders  Orders
	Timeout time.Duration
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if deps.Timeout > 0 {
		r.Use(middleware.Timeout(deps.Timeout))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authed := Authenticator(deps.Tokens, deps.Users)

	authHandler := NewAuthHandler(deps.Users, deps.Tokens)
	userHandler := NewUserHandler(deps.Users)
	productHandler := NewProductHandler(deps.Catalog)
	cartHandler := NewCartHandler(deps.Carts, deps.Catalog)
	orderHandler := NewOrderHandler(deps.Orders)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.With(authed).Get("/me", authHandler.Me)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(authed, RequireAdmin)
		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.Get)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Get("/search", productHandler.Search)
		r.Get("/{id}", productHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authed, RequireAdmin)
			r.Post("/", productHandler.Create)
			r.Put("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", cartHandler.Get)
		r.Post("/items", cartHandler.AddItem)
		r.Delete("/items/{productId}", cartHandler.RemoveItem)
		r.Delete("/", cartHandler.Clear)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authed)
		r.Post("/", orderHandler.Create)
		r.Get("/my-orders", orderHandler.ListMine)
		r.Get("/{id}", orderHandler.Get)
		r.Put("/{id}/pay", orderHandler.Pay)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Get("/", orderHandler.ListAll)
			r.Put("/{id}/deliver", orderHandler.Deliver)
			r.Put("/{id}/status", orderHandler.UpdateStatus)
			r.Delete("/{id}", orderHandler.Delete)
		})
	})

	return r
}
