package accounts

import "github.com/go-chi/chi/v5"

// MountRoutes attaches account directory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/tree", h.Tree)
	r.Get("/code/{code}", h.GetByCode)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/reparent", h.Reparent)
	r.Delete("/{id}", h.Delete)
}
