package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fitquality/storefront/internal/domain"
	"github.com/fitquality/storefront/internal/session"
)

// NewRouter assembles the full API surface under /api/v1. Everything except
// health, register and login sits behind the session middleware.
func NewRouter(
	sessions session.Store,
	auth *AuthHandler,
	products *ProductHandler,
	carts *CartHandler,
	orders *OrdersHandler,
	chats *ChatHandler,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(sessions))

			r.Post("/auth/logout", auth.Logout)
			r.Get("/profile", auth.Profile)
			r.Put("/profile", auth.UpdateProfile)
			r.Put("/profile/password", auth.UpdatePassword)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", products.List)
				r.Get("/{productID}", products.Get)

				r.Group(func(r chi.Router) {
					r.Use(RequireRole(domain.RoleStock))
					r.Post("/", products.Create)
					r.Put("/{productID}", products.Update)
					r.Delete("/{productID}", products.Delete)
				})
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", carts.Get)
				r.Post("/items", carts.AddItem)
				r.Delete("/items/{productID}", carts.RemoveItem)
				r.Delete("/", carts.Clear)
			})
			r.Post("/checkout", carts.Checkout)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", orders.List)
				r.With(RequireRole(domain.RoleStock, domain.RoleDelivery)).Get("/all", orders.ListAll)
				r.Get("/{orderID}", orders.Get)
				r.With(RequireRole(domain.RoleDelivery)).Post("/{orderID}/delivery-proof", orders.SetDeliveryProof)
			})

			r.Route("/chat", func(r chi.Router) {
				r.Get("/", chats.Counterparts)
				r.Get("/{peer}", chats.Conversation)
				r.Post("/{peer}", chats.Send)
			})
		})
	})

	return r
}
