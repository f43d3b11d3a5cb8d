package report

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pickdesk/pickdesk/internal/orders"
	"github.com/pickdesk/pickdesk/web"
)

// Handler serves rendered PDF documents for the picking floor.
type Handler struct {
	client *Client
	orders *orders.Service
	tmpl   *template.Template
	logger *slog.Logger
}

// NewHandler creates a report handler over the embedded templates.
func NewHandler(client *Client, orderSvc *orders.Service, logger *slog.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/report/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}
	return &Handler{client: client, orders: orderSvc, tmpl: tmpl, logger: logger}, nil
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ping", h.ping)
	r.Get("/orders/{id}/packing-slip", h.packingSlip)
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Ping(r.Context()); err != nil {
		h.logger.Warn("gotenberg ping failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type packingSlipData struct {
	Order       *orders.Order
	GeneratedAt string
}

func (h *Handler) packingSlip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("load order for packing slip", slog.Any("error", err), slog.Int64("order_id", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var html bytes.Buffer
	data := packingSlipData{Order: order, GeneratedAt: time.Now().Format(time.RFC1123)}
	if err := h.tmpl.ExecuteTemplate(&html, "packing_slip.html", data); err != nil {
		h.logger.Error("render packing slip html", slog.Any("error", err), slog.Int64("order_id", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	pdf, err := h.client.RenderHTML(r.Context(), html.String())
	if err != nil {
		h.logger.Error("render packing slip pdf", slog.Any("error", err), slog.Int64("order_id", id))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=packing-slip-%s.pdf", order.OrderNumber))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
