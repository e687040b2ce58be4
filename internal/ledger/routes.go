package ledger

import "github.com/go-chi/chi/v5"

// MountRoutes attaches ledger query routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/balance/{code}", h.Balance)
	r.Get("/accounts/{code}", h.Ledger)
	r.Get("/trial-balance", h.TrialBalance)
}
