// Package payment wraps the hosted card-payment provider. Card data
// never enters this process: the browser widget tokenizes it and the
// server only ever sees the resulting single-use source ID.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotReady is returned when the provider could not be reached within
// the initialization window, or after Close.
var ErrNotReady = errors.New("payment system failed to load")

// DeclineError is a charge the provider attempted and refused. Its
// detail is human-readable and safe to surface to the customer.
type DeclineError struct {
	Code   string
	Detail string
}

func (e *DeclineError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "payment declined"
}

type Config struct {
	AccessToken string
	AppID       string
	LocationID  string
	BaseURL     string
	Currency    string
}

// Client talks to the provider's payments API. Construct once at process
// start, Initialize before serving, Close on shutdown.
type Client struct {
	cfg  Config
	http *resty.Client

	mu     sync.Mutex
	ready  bool
	closed bool

	// Initialization polling knobs, overridable in tests.
	initAttempts int
	initInterval time.Duration
}

func NewClient(cfg Config) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Authorization", "Bearer "+cfg.AccessToken).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{
		cfg:          cfg,
		http:         httpClient,
		initAttempts: 20,
		initInterval: 500 * time.Millisecond,
	}
}

// Initialize polls the provider until it answers for our location. The
// loop is bounded (attempts * interval, ~10s by default); exhausting it
// is a terminal failure, not something to keep retrying behind the
// user's back.
func (c *Client) Initialize(ctx context.Context) error {
	for attempt := 1; attempt <= c.initAttempts; attempt++ {
		resp, err := c.http.R().
			SetContext(ctx).
			Get("/v2/locations/" + c.cfg.LocationID)
		if err == nil && resp.StatusCode() == http.StatusOK {
			c.mu.Lock()
			c.ready = true
			c.mu.Unlock()
			return nil
		}
		if err != nil {
			log.Printf("Payment provider not reachable (attempt %d/%d): %v", attempt, c.initAttempts, err)
		} else {
			log.Printf("Payment provider returned status %d (attempt %d/%d)", resp.StatusCode(), attempt, c.initAttempts)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrNotReady, ctx.Err())
		case <-time.After(c.initInterval):
		}
	}
	return ErrNotReady
}

// Ready reports whether Initialize has completed and Close has not run.
func (c *Client) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready && !c.closed
}

// Close tears the client down. Further charges are rejected.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.ready = false
}

type CreatePaymentRequest struct {
	SourceID       string
	IdempotencyKey string
	AmountCents    int64
}

// Payment is the provider's record of a completed charge.
type Payment struct {
	ID     string
	Status string
}

type paymentBody struct {
	SourceID       string      `json:"source_id"`
	IdempotencyKey string      `json:"idempotency_key"`
	AmountMoney    amountMoney `json:"amount_money"`
}

type amountMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type paymentResponse struct {
	Payment *struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"payment"`
	Errors []struct {
		Category string `json:"category"`
		Code     string `json:"code"`
		Detail   string `json:"detail"`
	} `json:"errors"`
}

// CreatePayment submits one charge. The idempotency key is minted by the
// caller, one per submission attempt; the provider de-duplicates retries
// that present the same key.
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	if !c.Ready() {
		return nil, ErrNotReady
	}

	body := paymentBody{
		SourceID:       req.SourceID,
		IdempotencyKey: req.IdempotencyKey,
		AmountMoney: amountMoney{
			Amount:   req.AmountCents,
			Currency: c.cfg.Currency,
		},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v2/payments")
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}

	var parsed paymentResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse payment response: %w", err)
	}

	if len(parsed.Errors) > 0 {
		first := parsed.Errors[0]
		return nil, &DeclineError{Code: first.Code, Detail: first.Detail}
	}

	if resp.StatusCode() != http.StatusOK || parsed.Payment == nil || parsed.Payment.ID == "" {
		return nil, fmt.Errorf("payment failed with status %d: no payment ID returned", resp.StatusCode())
	}

	return &Payment{ID: parsed.Payment.ID, Status: parsed.Payment.Status}, nil
}

// WidgetConfig is the public bootstrap data the card widget needs. It
// deliberately excludes the access token.
type WidgetConfig struct {
	AppID      string `json:"appId"`
	LocationID string `json:"locationId"`
}

func (c *Client) WidgetConfig() WidgetConfig {
	return WidgetConfig{AppID: c.cfg.AppID, LocationID: c.cfg.LocationID}
}
