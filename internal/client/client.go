// Package client is the HTTP client the storefront CLI uses to talk to the
// store API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/logisoltech/hitek-store/internal/domain"
	ordersvc "github.com/logisoltech/hitek-store/internal/service/order"
)

// ErrUnreachable is returned when the API endpoint refuses connections.
// The CLI shows its message verbatim.
var ErrUnreachable = errors.New("cannot reach the store server; check that the API is running and HITEK_API_URL points at it")

// APIError carries the error message returned by the API together with the
// HTTP status it arrived with.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a session token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Session is the token block returned by the auth endpoints.
type Session struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// AuthUser is the compact identity block returned next to a session.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	User    AuthUser `json:"user"`
	Session Session  `json:"session"`
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*AuthUser, *Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &resp); err != nil {
		return nil, nil, err
	}
	return &resp.User, &resp.Session, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthUser, *Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, nil, err
	}
	return &resp.User, &resp.Session, nil
}

// Products lists the catalog for a category ("printer" or "laptop").
func (c *Client) Products(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, categoryPath(category), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, category, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodGet, categoryPath(category)+"/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

type checkoutResponse struct {
	Order domain.Order       `json:"order"`
	Items []domain.OrderItem `json:"items"`
}

// Checkout posts the assembled order. Requires a session token.
func (c *Client) Checkout(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error) {
	var resp checkoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", in, &resp); err != nil {
		return nil, err
	}
	resp.Order.Items = resp.Items
	return &resp.Order, nil
}

func (c *Client) Orders(ctx context.Context, userID string) ([]domain.Order, error) {
	path := "/api/orders"
	if userID != "" {
		path += "?userId=" + userID
	}
	var resp struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func categoryPath(category string) string {
	return "/api/" + strings.TrimSpace(strings.ToLower(category)) + "s"
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var opErr *net.OpError
		if errors.As(err, &opErr) {
			return ErrUnreachable
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
