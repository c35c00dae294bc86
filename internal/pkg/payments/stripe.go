package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/repurposely/repurposely/internal/pkg/env"
)

const defaultStripeAPIBaseURL = "https://api.stripe.com/v1"

// StripeClient talks to the Stripe checkout session endpoints. Requests use
// the form-encoded bracket syntax of the Stripe API.
type StripeClient struct {
	SecretKey  string
	APIBaseURL string

	HTTPClient *http.Client
}

// CheckoutSession is the subset of a Stripe checkout session this system
// reads: identity, hosted page URL, payment state and the echoed metadata.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

func NewStripeClientFromEnv() *StripeClient {
	return &StripeClient{
		SecretKey:  strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", "")),
		APIBaseURL: strings.TrimSpace(env.GetEnv("STRIPE_API_BASE_URL", defaultStripeAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateCheckoutSession creates a hosted checkout page for a one-off payment.
// user_id and plan_type ride along as metadata and come back unchanged on the
// completion webhook.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, userID, planType string, plan Plan, successURL, cancelURL string) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", "inr")
	form.Set("line_items[0][price_data][product_data][name]", plan.Name)
	form.Set("line_items[0][price_data][product_data][description]", plan.Description())
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(plan.Amount, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("mode", "payment")
	form.Set("success_url", successURL+"?session_id={CHECKOUT_SESSION_ID}")
	form.Set("cancel_url", cancelURL)
	form.Set("metadata[user_id]", userID)
	form.Set("metadata[plan_type]", planType)

	body, err := c.do(ctx, http.MethodPost, "/checkout/sessions", form)
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, err
	}
	if strings.TrimSpace(session.ID) == "" {
		return nil, errors.New("stripe returned a session without an id")
	}
	return &session, nil
}

// GetCheckoutSession retrieves a previously created checkout session.
func (c *StripeClient) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session id is required")
	}

	body, err := c.do(ctx, http.MethodGet, "/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *StripeClient) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is not configured")
	}

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.APIBaseURL, "/")+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe request failed: status=%d %s", resp.StatusCode, stripeErrorMessage(body))
	}
	return body, nil
}

func stripeErrorMessage(body []byte) string {
	var raw struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &raw); err == nil && strings.TrimSpace(raw.Error.Message) != "" {
		return strings.TrimSpace(raw.Error.Message)
	}
	return string(body)
}
