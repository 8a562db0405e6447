// internal/entity/client.go
package entity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultClientTimeout = 10 * time.Second

// Client talks to a remote entity API that exposes Player and Booking
// collections under /entities/{name}. It implements the accessor contract
// for deployments where storage lives outside this service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an entity API client for baseURL. A nil httpClient gets
// a default with a request timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Players returns the player accessor backed by this client.
func (c *Client) Players() PlayerAPI {
	return playerClient{c}
}

// Bookings returns the booking accessor backed by this client.
func (c *Client) Bookings() BookingAPI {
	return bookingClient{c}
}

type playerClient struct{ c *Client }

func (p playerClient) List(ctx context.Context, sort string, limit int) ([]Player, error) {
	var out []Player
	if err := p.c.list(ctx, "Player", sort, limit, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p playerClient) Create(ctx context.Context, in PlayerInput) (Player, error) {
	var out Player
	err := p.c.do(ctx, http.MethodPost, "/entities/Player", in, &out)
	return out, err
}

func (p playerClient) Update(ctx context.Context, id string, in PlayerInput) (Player, error) {
	var out Player
	err := p.c.do(ctx, http.MethodPut, "/entities/Player/"+url.PathEscape(id), in, &out)
	return out, err
}

type bookingClient struct{ c *Client }

func (b bookingClient) List(ctx context.Context, sort string, limit int) ([]Booking, error) {
	var out []Booking
	if err := b.c.list(ctx, "Booking", sort, limit, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b bookingClient) Create(ctx context.Context, in BookingInput) (Booking, error) {
	var out Booking
	err := b.c.do(ctx, http.MethodPost, "/entities/Booking", in, &out)
	return out, err
}

func (b bookingClient) Update(ctx context.Context, id string, in BookingInput) (Booking, error) {
	var out Booking
	err := b.c.do(ctx, http.MethodPut, "/entities/Booking/"+url.PathEscape(id), in, &out)
	return out, err
}

func (c *Client) list(ctx context.Context, name, sort string, limit int, out any) error {
	query := url.Values{}
	if sort != "" {
		query.Set("sort", sort)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	path := "/entities/" + name
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("entity api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("entity api %s %s: status %d: %s", method, path, resp.StatusCode, snippet)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
