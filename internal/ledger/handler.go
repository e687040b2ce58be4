package ledger

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/frostline-erp/frostline/internal/platform/httpx"
)

// Handler exposes balance, ledger, and trial balance queries over HTTP.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the ledger handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	asOf, err := queryDate(r, "asOf", h.service.now())
	if err != nil {
		httpx.RespondError(w, ErrInvalidRange)
		return
	}
	b, err := h.service.AccountBalance(r.Context(), code, asOf)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toBalanceResponse(code, asOf, b))
}

func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	from, err := optionalQueryDate(r, "from")
	if err != nil {
		httpx.RespondError(w, ErrInvalidRange)
		return
	}
	to, err := optionalQueryDate(r, "to")
	if err != nil {
		httpx.RespondError(w, ErrInvalidRange)
		return
	}
	l, err := h.service.AccountLedger(r.Context(), code, from, to)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toLedgerResponse(l))
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := optionalQueryDate(r, "asOf")
	if err != nil {
		httpx.RespondError(w, ErrInvalidRange)
		return
	}
	tb, err := h.service.TrialBalance(r.Context(), asOf)
	if err != nil {
		h.logger.Error("trial balance", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="trial-balance.csv"`)
		if err := writeTrialBalanceCSV(w, tb); err != nil {
			h.logger.Error("trial balance csv", slog.Any("error", err))
		}
		return
	}
	httpx.JSON(w, http.StatusOK, toTrialBalanceResponse(tb))
}

func queryDate(r *http.Request, key string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(dateLayout, raw)
}

func optionalQueryDate(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
