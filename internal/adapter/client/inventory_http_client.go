package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/order-inventory/internal/core/domain"
)

const requestTimeout = 5 * time.Second

// InventoryHTTPClient talks to the inventory service's /inventory/update
// contract. There is no retry; a timeout surfaces as
// InventoryUnavailableError.
type InventoryHTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewInventoryHTTPClient(baseURL string, logger *zap.Logger) *InventoryHTTPClient {
	return &InventoryHTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

type updateRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateResponse struct {
	ProductID             string `json:"productId"`
	TotalQuantityDeducted int    `json:"totalQuantityDeducted"`
	BatchDeductions       []struct {
		BatchNumber      string `json:"batchNumber"`
		QuantityDeducted int    `json:"quantityDeducted"`
	} `json:"batchDeductions"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

func (c *InventoryHTTPClient) UpdateInventory(ctx context.Context, productID string, quantity int) (*domain.DeductionResult, error) {
	body, err := json.Marshal(updateRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return nil, &domain.InventoryUnavailableError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/inventory/update", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.InventoryUnavailableError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("inventory service call failed", zap.Error(err))
		return nil, &domain.InventoryUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out updateResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, &domain.InventoryUnavailableError{Err: fmt.Errorf("decode response: %w", err)}
		}

		result := &domain.DeductionResult{
			ProductID:     out.ProductID,
			TotalDeducted: out.TotalQuantityDeducted,
		}
		for _, d := range out.BatchDeductions {
			result.Deductions = append(result.Deductions, domain.BatchDeduction{
				BatchNumber:      d.BatchNumber,
				QuantityDeducted: d.QuantityDeducted,
			})
		}
		return result, nil

	case http.StatusNotFound:
		return nil, fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)

	case http.StatusBadRequest:
		var out errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Requested > 0 {
			return nil, &domain.InsufficientInventoryError{
				Requested: out.Requested,
				Available: out.Available,
			}
		}
		return nil, &domain.InsufficientInventoryError{Requested: quantity}

	default:
		return nil, &domain.InventoryUnavailableError{
			Err: fmt.Errorf("inventory service returned status %d", resp.StatusCode),
		}
	}
}

// CheckHealth probes the inventory service's health endpoint.
func (c *InventoryHTTPClient) CheckHealth(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/inventory/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("inventory health check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode == http.StatusOK && strings.Contains(string(body), "running")
}
