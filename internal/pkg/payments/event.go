package payments

import (
	"encoding/json"
	"errors"
	"strings"
)

// Webhook event types this system acts on. Everything else is acknowledged
// without a state change so the processor stops redelivering.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentSucceeded   = "payment_intent.succeeded"
)

// Event is a verified processor webhook notification.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// ParseEvent decodes the raw webhook body into an event envelope.
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	if strings.TrimSpace(event.Type) == "" {
		return nil, errors.New("event type is missing")
	}
	return &event, nil
}

// checkoutObject is the session shape inside checkout.session.completed.
type checkoutObject struct {
	ID            string            `json:"id"`
	PaymentStatus string            `json:"payment_status"`
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

// intentObject is the payment intent shape inside payment_intent.succeeded.
type intentObject struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}
