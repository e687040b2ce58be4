package statements

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/frostline-erp/frostline/internal/platform/httpx"
)

const dateLayout = "2006-01-02"

// Handler exposes statement generation over HTTP. All endpoints are
// read-only; period parameters default to the current calendar year to
// date.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the statements handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "asOf", h.service.now())
	if err != nil {
		httpx.RespondError(w, ErrInvalidRange)
		return
	}
	doc, err := h.service.BalanceSheet(r.Context(), asOf)
	if err != nil {
		h.logger.Error("balance sheet", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.period(r)
	if err != nil {
		httpx.RespondError(w, ErrInvalidRange)
		return
	}
	doc, err := h.service.IncomeStatement(r.Context(), from, to)
	if err != nil {
		h.logger.Error("income statement", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) CashFlow(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.period(r)
	if err != nil {
		httpx.RespondError(w, ErrInvalidRange)
		return
	}
	doc, err := h.service.CashFlow(r.Context(), from, to)
	if err != nil {
		h.logger.Error("cash flow", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.period(r)
	if err != nil {
		httpx.RespondError(w, ErrInvalidRange)
		return
	}
	doc, err := h.service.Analysis(r.Context(), from, to)
	if err != nil {
		h.logger.Error("financial analysis", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) period(r *http.Request) (time.Time, time.Time, error) {
	now := h.service.now()
	from, err := queryDate(r, "from", time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := queryDate(r, "to", now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func queryDate(r *http.Request, key string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(dateLayout, raw)
}
