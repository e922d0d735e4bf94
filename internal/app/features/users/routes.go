// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns the router for the user CRUD and order endpoints,
// mounted under /api/users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetUsers)
	r.Post("/", h.CreateUser)

	r.Get("/{userId}", h.GetUser)
	r.Put("/{userId}", h.UpdateUser)

	r.Put("/{userId}/orders", h.AddOrder)
	r.Get("/{userId}/orders", h.GetOrders)
	r.Get("/{userId}/orders/total-price", h.GetOrdersTotalPrice)

	return r
}
