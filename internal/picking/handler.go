package picking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pickdesk/pickdesk/internal/orders"
	"github.com/pickdesk/pickdesk/internal/platform/httpx"
)

// SessionHeader carries the picking session id. Missing ids are minted per
// request and echoed back so the client can stick to one session.
const SessionHeader = "X-Picking-Session"

// Handler wires HTTP endpoints for the picking workflow.
type Handler struct {
	logger     *slog.Logger
	controller *Controller
	validate   *validator.Validate
}

// NewHandler constructs picking handler.
func NewHandler(logger *slog.Logger, controller *Controller) *Handler {
	return &Handler{logger: logger, controller: controller, validate: validator.New()}
}

// MountRoutes registers picking routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/orders/{id}/accept", h.Accept)
	r.Post("/orders/{id}/items/{itemID}/scan", h.Scan)
	r.Post("/orders/{id}/items/{itemID}/quantity", h.ConfirmQuantity)
	r.Post("/orders/{id}/send-to-billing", h.SendToBilling)
	r.Post("/orders/{id}/bill", h.Bill)
	r.Post("/orders/{id}/cancel", h.Cancel)
	r.Post("/resolve", h.Resolve)
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}
	var req AcceptRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.controller.Accept(r.Context(), orderID, req.Picker)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid item id")
		return
	}

	var req ScanRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if req.Code == "" && len(req.Candidates) == 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "code or candidates required")
		return
	}

	sessionID := h.sessionID(w, r)

	var result ScanResult
	if req.Code != "" {
		result, err = h.controller.ScanCode(r.Context(), sessionID, orderID, itemID, req.Code)
	} else {
		result, err = h.controller.ScanFrame(r.Context(), sessionID, orderID, itemID, req.Candidates)
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) ConfirmQuantity(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid item id")
		return
	}

	var req QuantityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}

	result, err := h.controller.ApplyQuantity(r.Context(), orderID, itemID, req.Quantity)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	sessionID := h.sessionID(w, r)
	product, err := h.controller.ChooseProduct(r.Context(), sessionID, req.Barcode, req.ProductID, req.Remember)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) SendToBilling(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.controller.SendToBilling)
}

func (h *Handler) Bill(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.controller.Bill)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.controller.Cancel)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) (*orders.Order, error)) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}
	order, err := fn(r.Context(), orderID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid order id")
		return 0, false
	}
	return id, true
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	id := uuid.NewString()
	w.Header().Set(SessionHeader, id)
	return id
}

// respondError maps workflow errors: recoverable scan feedback stays inline
// as 422s, contract violations surface loudly as 409s.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case IsUserFacing(err):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Scan Rejected", err.Error())
	case errors.Is(err, orders.ErrInvalidTransition):
		httpx.Problem(w, http.StatusConflict, "Invalid Transition", err.Error())
	case errors.Is(err, orders.ErrNotFound), errors.Is(err, orders.ErrItemNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error("picking request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
