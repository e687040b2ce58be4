package statements

import "github.com/go-chi/chi/v5"

// MountRoutes attaches statement generation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/balance-sheet", h.BalanceSheet)
	r.Get("/income", h.IncomeStatement)
	r.Get("/cash-flow", h.CashFlow)
	r.Get("/analysis", h.Analysis)
}
