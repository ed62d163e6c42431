package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rl1809/order-inventory/internal/core/domain"
	"github.com/rl1809/order-inventory/internal/core/service"
)

const dateLayout = "2006-01-02"

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: svc}
}

func (h *InventoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /inventory/health", h.HealthCheck)
	mux.HandleFunc("GET /inventory/{productId}", h.GetBatches)
	mux.HandleFunc("GET /inventory/{productId}/availability", h.GetAvailability)
	mux.HandleFunc("POST /inventory/update", h.UpdateInventory)
}

type batchResponse struct {
	BatchNumber       string `json:"batchNumber"`
	ProductID         string `json:"productId"`
	ProductName       string `json:"productName"`
	Quantity          int    `json:"quantity"`
	ExpiryDate        string `json:"expiryDate"`
	ManufacturingDate string `json:"manufacturingDate"`
	Expired           bool   `json:"expired"`
}

type updateInventoryRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type batchDeductionResponse struct {
	BatchNumber      string `json:"batchNumber"`
	QuantityDeducted int    `json:"quantityDeducted"`
}

type updateInventoryResponse struct {
	ProductID             string                   `json:"productId"`
	TotalQuantityDeducted int                      `json:"totalQuantityDeducted"`
	BatchDeductions       []batchDeductionResponse `json:"batchDeductions"`
	Message               string                   `json:"message"`
}

type availabilityResponse struct {
	ProductID string `json:"productId"`
	Available int    `json:"available"`
}

type apiError struct {
	Error     string `json:"error"`
	Requested int    `json:"requested,omitempty"`
	Available int    `json:"available,omitempty"`
}

func (h *InventoryHandler) GetBatches(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")

	product, batches, err := h.service.GetBatches(r.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
		return
	}

	now := time.Now()
	out := make([]batchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, batchResponse{
			BatchNumber:       b.BatchNumber,
			ProductID:         b.ProductID,
			ProductName:       product.Name,
			Quantity:          b.Quantity,
			ExpiryDate:        b.ExpiryDate.Format(dateLayout),
			ManufacturingDate: b.ManufacturingDate.Format(dateLayout),
			Expired:           b.Expired(now),
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *InventoryHandler) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	var req updateInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	if req.ProductID == "" || req.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "productId and a positive quantity are required"})
		return
	}

	strategyName := r.URL.Query().Get("strategy")

	result, err := h.service.UpdateInventory(r.Context(), req.ProductID, req.Quantity, strategyName)
	if err != nil {
		var insufficient *domain.InsufficientInventoryError
		switch {
		case errors.As(err, &insufficient):
			writeJSON(w, http.StatusBadRequest, apiError{
				Error:     insufficient.Error(),
				Requested: insufficient.Requested,
				Available: insufficient.Available,
			})
		case errors.Is(err, domain.ErrProductNotFound):
			writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
		}
		return
	}

	deductions := make([]batchDeductionResponse, 0, len(result.Deductions))
	for _, d := range result.Deductions {
		deductions = append(deductions, batchDeductionResponse{
			BatchNumber:      d.BatchNumber,
			QuantityDeducted: d.QuantityDeducted,
		})
	}

	writeJSON(w, http.StatusOK, updateInventoryResponse{
		ProductID:             result.ProductID,
		TotalQuantityDeducted: result.TotalDeducted,
		BatchDeductions:       deductions,
		Message:               fmt.Sprintf("inventory deducted successfully using %s strategy", result.Strategy),
	})
}

func (h *InventoryHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")

	available, err := h.service.GetAvailability(r.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, availabilityResponse{ProductID: productID, Available: available})
}

func (h *InventoryHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Inventory Service is running"))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
