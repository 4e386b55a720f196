package clover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloversync/internal/logger"
)

const (
	productionBaseURL = "https://api.clover.com/v3"
	sandboxBaseURL    = "https://apisandbox.dev.clover.com/v3"
)

// Client talks to the Clover merchant REST API. It performs no retries;
// duplicate order creation is worse than a failed sync.
type Client struct {
	accessToken string
	merchantID  string
	baseURL     string
	httpClient  *http.Client
	logger      *logger.Logger
}

func NewClient(accessToken, merchantID string, sandbox bool, logger *logger.Logger) *Client {
	baseURL := productionBaseURL
	if sandbox {
		baseURL = sandboxBaseURL
	}

	return &Client{
		accessToken: accessToken,
		merchantID:  merchantID,
		baseURL:     baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CreateOrder creates an open order on the merchant's Clover account.
func (c *Client) CreateOrder(ctx context.Context, order *Order) (*OrderResponse, error) {
	url := fmt.Sprintf("%s/merchants/%s/orders", c.baseURL, c.merchantID)

	var resp OrderResponse
	if err := c.do(ctx, http.MethodPost, url, order, &resp); err != nil {
		return nil, err
	}

	if resp.ID == "" {
		return nil, &SchemaError{Op: "create order", Field: "id"}
	}

	return &resp, nil
}

// PrintBill asks the merchant's default printer for a receipt of the given
// order.
func (c *Client) PrintBill(ctx context.Context, orderID string) error {
	url := fmt.Sprintf("%s/merchants/%s/orders/%s/print", c.baseURL, c.merchantID, orderID)

	payload := PrintRequest{
		PrinterID:     "default",
		Type:          "receipt",
		IncludeItems:  true,
		IncludeTotals: true,
	}

	return c.do(ctx, http.MethodPost, url, payload, nil)
}

// GetPrinters lists the printers registered to the merchant.
func (c *Client) GetPrinters(ctx context.Context) ([]Printer, error) {
	url := fmt.Sprintf("%s/merchants/%s/printers", c.baseURL, c.merchantID)

	var resp PrintersResponse
	if err := c.do(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return nil, err
	}

	if resp.Elements == nil {
		return nil, &SchemaError{Op: "get printers", Field: "elements"}
	}

	return resp.Elements, nil
}

// GetInventoryItems fetches the merchant's inventory.
func (c *Client) GetInventoryItems(ctx context.Context) ([]InventoryItem, error) {
	url := fmt.Sprintf("%s/merchants/%s/items", c.baseURL, c.merchantID)

	var resp InventoryResponse
	if err := c.do(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Elements, nil
}

// GetCategories fetches the merchant's inventory categories.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	url := fmt.Sprintf("%s/merchants/%s/categories", c.baseURL, c.merchantID)

	var resp CategoriesResponse
	if err := c.do(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Elements, nil
}

// GetModifierGroups fetches the merchant's modifier groups.
func (c *Client) GetModifierGroups(ctx context.Context) ([]ModifierGroup, error) {
	url := fmt.Sprintf("%s/merchants/%s/modifier_groups", c.baseURL, c.merchantID)

	var resp ModifierGroupsResponse
	if err := c.do(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Elements, nil
}

// TestConnection verifies the credentials against the merchant endpoint.
func (c *Client) TestConnection(ctx context.Context) (*Merchant, error) {
	url := fmt.Sprintf("%s/merchants/%s", c.baseURL, c.merchantID)

	var resp Merchant
	if err := c.do(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, url string, payload, out interface{}) error {
	op := fmt.Sprintf("%s %s", method, url)

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	c.logger.Debug("clover API response: %s %s -> %d", method, url, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
