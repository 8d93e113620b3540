// Package instacart turns an ingredient list into a shareable Instacart cart.
package instacart

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
	"syscall"
	"time"

	"github.com/akeren/macro-app-api/pkg/constants"
	"github.com/akeren/macro-app-api/pkg/retry"
)

const (
	StepCreateCart = "create_cart"
	StepAddItems   = "add_items"
	StepShareCart  = "share_cart"

	defaultUnit     = "unit"
	defaultQuantity = 1.0
)

// Item is one requested ingredient. Zero Amount and empty Unit fall back to 1 "unit".
type Item struct {
	Name   string
	Amount float64
	Unit   string
}

type ShoppingListCreator interface {
	CreateShoppingList(ctx context.Context, items []Item) (string, error)
}

type Config struct {
	APIKey  string
	StoreID string
	BaseURL string // Optional, defaults to the public v2 API
	Timeout time.Duration
	Retry   *retry.Config // Optional; applies to failures before the request is sent
	Logger  Logger        // Optional
}

type Logger interface {
	Warn(msg string, args ...any)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	storeID    string
	retry      *retry.Policy
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" || cfg.StoreID == "" {
		return nil, errors.New("instacart: api key and store id are required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultInstacartAPIURL
	}

	retryCfg := *retry.DefaultConfig()
	if cfg.Retry != nil {
		retryCfg = *cfg.Retry
	}
	retryCfg.Retryable = isRetryable
	if cfg.Logger != nil {
		logger := cfg.Logger
		retryCfg.OnRetry = func(attempt int, delay time.Duration, err error) {
			logger.Warn("Retrying Instacart request", "attempt", attempt, "delay", delay.String(), "error", err.Error())
		}
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		storeID:    cfg.StoreID,
		retry:      retry.New(&retryCfg),
	}, nil
}

type createCartRequest struct {
	StoreID string `json:"store_id"`
}

type createCartResponse struct {
	ID json.RawMessage `json:"id"`
}

type cartItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type addItemsRequest struct {
	Items []cartItem `json:"items"`
}

type shareCartResponse struct {
	ShareURL string `json:"share_url"`
}

// CreateShoppingList runs create cart, add items and share as one forward-only saga.
// The first failing step aborts the rest; nothing already created upstream is undone.
func (c *Client) CreateShoppingList(ctx context.Context, items []Item) (string, error) {
	var cart createCartResponse
	if err := c.step(ctx, StepCreateCart, "/carts", createCartRequest{StoreID: c.storeID}, &cart); err != nil {
		return "", err
	}

	cartID, err := parseCartID(cart.ID)
	if err != nil {
		return "", &StepError{Step: StepCreateCart, Err: err}
	}

	body := addItemsRequest{Items: make([]cartItem, len(items))}
	for i, item := range items {
		body.Items[i] = toCartItem(item)
	}
	if err := c.step(ctx, StepAddItems, "/carts/"+cartID+"/items", body, nil); err != nil {
		return "", err
	}

	var share shareCartResponse
	if err := c.step(ctx, StepShareCart, "/carts/"+cartID+"/share", nil, &share); err != nil {
		return "", err
	}
	if share.ShareURL == "" {
		return "", &StepError{Step: StepShareCart, Err: errors.New("response has no share_url")}
	}

	return share.ShareURL, nil
}

func (c *Client) step(ctx context.Context, name, path string, body, result any) error {
	err := c.retry.Do(ctx, func(ctx context.Context) error {
		return c.postJSON(ctx, path, body, result)
	})
	if err != nil {
		return &StepError{Step: name, Err: err}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}

func toCartItem(item Item) cartItem {
	quantity := item.Amount
	if quantity == 0 {
		quantity = defaultQuantity
	}
	unit := item.Unit
	if unit == "" {
		unit = defaultUnit
	}
	return cartItem{Name: item.Name, Quantity: quantity, Unit: unit}
}

// parseCartID accepts the id as either a JSON string or a JSON number.
func parseCartID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.New("response has no cart id")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", errors.New("response has an empty cart id")
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("unexpected cart id %s", string(raw))
	}
	return n.String(), nil
}

// Every step is a non-idempotent POST, so only failures where the request never left this
// host are retried: a refused or failed dial, or a name that did not resolve. Timeouts and
// resets may follow a request Instacart already applied.
func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// StepError names the saga step that aborted the shopping list.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("instacart: %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
