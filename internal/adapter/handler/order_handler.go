package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rl1809/order-inventory/internal/core/domain"
	"github.com/rl1809/order-inventory/internal/core/service"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{service: svc}
}

func (h *OrderHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /order/health", h.HealthCheck)
	mux.HandleFunc("POST /order", h.PlaceOrder)
	mux.HandleFunc("GET /order/{orderId}", h.GetOrder)
	mux.HandleFunc("PUT /order/{orderId}/cancel", h.CancelOrder)
}

type orderRequest struct {
	ProductID     string `json:"productId"`
	Quantity      int    `json:"quantity"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

func (r orderRequest) validate() string {
	switch {
	case r.ProductID == "":
		return "productId is required"
	case r.Quantity <= 0:
		return "quantity must be positive"
	case r.CustomerName == "":
		return "customerName is required"
	case r.CustomerEmail == "" || !strings.Contains(r.CustomerEmail, "@"):
		return "a valid customerEmail is required"
	}
	return ""
}

type orderResponse struct {
	OrderID       string             `json:"orderId"`
	ProductID     string             `json:"productId"`
	Quantity      int                `json:"quantity"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	Status        domain.OrderStatus `json:"status"`
	FailureReason string             `json:"failureReason,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Message       string             `json:"message,omitempty"`
}

func toOrderResponse(order *domain.Order, message string) orderResponse {
	return orderResponse{
		OrderID:       order.OrderID,
		ProductID:     order.ProductID,
		Quantity:      order.Quantity,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Status:        order.Status,
		FailureReason: order.FailureReason,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
		Message:       message,
	}
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: msg})
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), service.PlaceOrderInput{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		if domain.IsInventoryFailure(err) {
			writeJSON(w, http.StatusServiceUnavailable, apiError{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to process order"})
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order, "order placed successfully"))
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderId")

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order, ""))
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderId")

	order, err := h.service.CancelOrder(r.Context(), orderID)
	if err != nil {
		var invalid *domain.InvalidStateError
		switch {
		case errors.As(err, &invalid):
			writeJSON(w, http.StatusBadRequest, apiError{Error: invalid.Error()})
		case errors.Is(err, domain.ErrOrderNotFound):
			writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order, "order cancelled successfully"))
}

func (h *OrderHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Order Service is running"))
}
