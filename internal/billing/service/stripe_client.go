package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	billingdomain "github.com/fizzbo19/dealercommand/internal/billing/domain"
)

type stripeCheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type stripeClient struct {
	apiKey string
	client *http.Client
}

func newStripeClient(apiKey string) *stripeClient {
	return &stripeClient{
		apiKey: strings.TrimSpace(apiKey),
		client: &http.Client{Timeout: 12 * time.Second},
	}
}

func (c *stripeClient) createCheckoutSession(
	ctx context.Context,
	email string,
	planName string,
	priceID string,
	successURL string,
	cancelURL string,
	idempotencyKey string,
) (stripeCheckoutSession, error) {
	values := url.Values{}
	values.Set("mode", "subscription")
	values.Set("customer_email", email)
	values.Set("success_url", successURL)
	values.Set("cancel_url", cancelURL)
	values.Set("line_items[0][price]", priceID)
	values.Set("line_items[0][quantity]", "1")
	values.Set("metadata[email]", email)
	values.Set("metadata[plan]", planName)

	return c.doRequest(ctx, http.MethodPost, "/v1/checkout/sessions", values, idempotencyKey)
}

func (c *stripeClient) retrieveCheckoutSession(ctx context.Context, sessionID string) (stripeCheckoutSession, error) {
	return c.doRequest(ctx, http.MethodGet, "/v1/checkout/sessions/"+sessionID, nil, "")
}

func (c *stripeClient) doRequest(
	ctx context.Context,
	method string,
	path string,
	values url.Values,
	idempotencyKey string,
) (stripeCheckoutSession, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return stripeCheckoutSession{}, billingdomain.ErrNotConfigured
	}
	var bodyReader *strings.Reader
	if values != nil {
		bodyReader = strings.NewReader(values.Encode())
	} else {
		bodyReader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, "https://api.stripe.com"+path, bodyReader)
	if err != nil {
		return stripeCheckoutSession{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return stripeCheckoutSession{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var stripeErr stripeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&stripeErr); err != nil {
			return stripeCheckoutSession{}, errors.New("stripe_request_failed")
		}
		message := strings.TrimSpace(stripeErr.Error.Message)
		if message == "" {
			message = "stripe_request_failed"
		}
		return stripeCheckoutSession{}, errors.New(message)
	}

	var session stripeCheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return stripeCheckoutSession{}, err
	}
	if session.ID == "" {
		return stripeCheckoutSession{}, errors.New("stripe_response_invalid")
	}
	return session, nil
}
