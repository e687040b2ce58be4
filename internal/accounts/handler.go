package accounts

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/frostline-erp/frostline/internal/platform/httpx"
)

// Handler exposes the account directory over HTTP.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the accounts handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list accounts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toResponse(a))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	roots, err := h.service.Tree(r.Context())
	if err != nil {
		h.logger.Error("account tree", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]TreeResponse, 0, len(roots))
	for _, n := range roots {
		out = append(out, toTreeResponse(n))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, ErrInvalidInput)
		return
	}
	acct, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(acct))
}

func (h *Handler) GetByCode(w http.ResponseWriter, r *http.Request) {
	acct, err := h.service.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(acct))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, ErrInvalidInput)
		return
	}
	in, err := req.toInput()
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	acct, err := h.service.Create(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(acct))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, ErrInvalidInput)
		return
	}
	var req UpdateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, ErrInvalidInput)
		return
	}
	in, err := req.toInput()
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	acct, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(acct))
}

func (h *Handler) Reparent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, ErrInvalidInput)
		return
	}
	var req ReparentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, ErrInvalidInput)
		return
	}
	acct, err := h.service.Reparent(r.Context(), id, req.NewParentID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(acct))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, ErrInvalidInput)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
