// Package api is the outbound REST client for the booking data backend and
// the repositories built on top of it.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookify/config"
)

// Client encapsulates HTTP interaction with the booking data backend.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client from the configured backend address.
func NewClient() *Client {
	return &Client{
		baseURL: strings.TrimRight(config.AppConfig.BookingAPIBase, "/"),
		apiKey:  config.AppConfig.BookingAPIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch performs a GET against the given route and decodes the JSON response
// into out.
func (c *Client) Fetch(ctx context.Context, route string, params url.Values, out interface{}) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("api client not configured")
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(route, "/")
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, route)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ErrNotFound is returned when the backend has no entity for the request.
var ErrNotFound = fmt.Errorf("not found")
