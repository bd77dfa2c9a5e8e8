package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"bistro/internal/domain"
)

// Client talks to the external orders API. The base URL selects the backend
// origin; requests carry no timeout beyond what the caller's context brings.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
}

// CreateRequest is the POST /api/orders body
type CreateRequest struct {
	CustomerName string             `json:"customerName"`
	Items        []domain.OrderItem `json:"items"`
	TotalAmount  float64            `json:"totalAmount"`
}

type updateRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// List fetches all orders, optionally narrowed by customer name. Callers
// re-filter client-side regardless; the query parameter is a hint.
func (c *Client) List(ctx context.Context, customerName string) ([]domain.Order, error) {
	path := "/api/orders"
	if customerName != "" {
		path += "?customerName=" + url.QueryEscape(customerName)
	}
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Create submits a new order and returns the created record
func (c *Client) Create(ctx context.Context, req CreateRequest) (*domain.Order, error) {
	var o domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatus sends a partial update carrying only the new status
func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	var o domain.Order
	path := "/api/orders/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPatch, path, updateRequest{Status: status}, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// do performs one JSON round trip; any non-2xx response is an error
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: unexpected status %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
