package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/repurposely/repurposely/app/models"
	"github.com/repurposely/repurposely/app/repository"
)

const providerStripe = "stripe"

// Sentinel errors mapped at the API boundary. Signature and payload failures
// are client errors; the processor retries delivery only on non-2xx.
var (
	ErrInvalidPlan      = errors.New("invalid plan type")
	ErrCheckoutCreation = errors.New("failed to create checkout session")
	ErrSessionLookup    = errors.New("failed to retrieve session")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Service creates hosted checkout sessions and applies verified webhook
// events to subscription state.
type Service struct {
	stripe        *StripeClient
	users         repository.UserRepository
	payments      repository.PaymentRepository
	events        repository.WebhookEventRepository
	webhookSecret string
}

// NewService creates a payment service from injected dependencies.
func NewService(stripe *StripeClient, users repository.UserRepository, payments repository.PaymentRepository, events repository.WebhookEventRepository, webhookSecret string) *Service {
	return &Service{
		stripe:        stripe,
		users:         users,
		payments:      payments,
		events:        events,
		webhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession validates the plan type locally, then creates the
// hosted checkout page. No processor call is made for an unknown plan.
func (s *Service) CreateCheckoutSession(ctx context.Context, userID, planType, successURL, cancelURL string) (*CheckoutSession, error) {
	plan, ok := Plans[planType]
	if !ok {
		return nil, ErrInvalidPlan
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, userID, planType, plan, successURL, cancelURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutCreation, err)
	}
	return session, nil
}

// GetSessionDetails retrieves the current state of a checkout session.
func (s *Service) GetSessionDetails(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	session, err := s.stripe.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionLookup, err)
	}
	return session, nil
}

// HandleWebhook verifies and applies one webhook delivery. Events are
// recorded keyed by processor event id: a redelivery of an event that already
// applied cleanly is acknowledged without effect, while a redelivery of one
// that failed mid-apply is applied again.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) (*Event, error) {
	// Nothing in the payload is interpreted before the signature holds.
	if !VerifyStripeWebhookSignature(payload, signatureHeader, s.webhookSecret) {
		return nil, ErrInvalidSignature
	}

	event, err := ParseEvent(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	eventID := strings.TrimSpace(event.ID)
	if eventID == "" {
		sum := sha256.Sum256(payload)
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	created, stored, err := s.events.CreateIfNotExists(&models.WebhookEvent{
		Provider:        providerStripe,
		ProviderEventID: eventID,
		EventType:       event.Type,
		PayloadJSON:     string(payload),
		SignatureValid:  true,
	})
	if err != nil {
		return nil, err
	}
	if !created && stored.ProcessedAt != nil && stored.ProcessingError == "" {
		// Duplicate delivery; already applied cleanly.
		return event, nil
	}

	applyErr := s.applyEvent(ctx, event)
	errMsg := ""
	if applyErr != nil {
		errMsg = applyErr.Error()
	}
	if err := s.events.MarkProcessed(stored.ID, errMsg); err != nil {
		log.Printf("failed to mark webhook event %d processed: %v", stored.ID, err)
	}
	if applyErr != nil {
		return nil, applyErr
	}
	return event, nil
}

func (s *Service) applyEvent(ctx context.Context, event *Event) error {
	switch event.Type {
	case EventCheckoutSessionCompleted:
		return s.applyCheckoutCompleted(ctx, event)
	case EventPaymentIntentSucceeded:
		return s.applyIntentSucceeded(ctx, event)
	default:
		// Accepted, no state change.
		return nil
	}
}

func (s *Service) applyCheckoutCompleted(ctx context.Context, event *Event) error {
	_ = ctx
	var session checkoutObject
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	userID := strings.TrimSpace(session.Metadata["user_id"])
	planType := strings.TrimSpace(session.Metadata["plan_type"])
	if userID == "" || planType == "" {
		return nil
	}

	if grantsUnlimited(planType) {
		if err := s.users.UpdatePlan(userID, models.PlanPaid); err != nil {
			return err
		}
	}
	// payg: the plan table declares 10 credits, but no credit balance exists
	// on the user row yet, so completion currently grants nothing.

	payment := &models.Payment{
		Reference:       uuid.NewString(),
		UserID:          userID,
		Amount:          session.AmountTotal,
		Currency:        session.Currency,
		Status:          session.PaymentStatus,
		StripePaymentID: firstNonEmpty(session.PaymentIntent, session.ID),
	}
	if payment.Currency == "" {
		payment.Currency = "inr"
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPaid
	}
	return s.payments.Create(payment)
}

// applyIntentSucceeded is the fallback path for payments that arrive as bare
// payment intents rather than checkout sessions.
func (s *Service) applyIntentSucceeded(ctx context.Context, event *Event) error {
	_ = ctx
	var intent intentObject
	if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	userID := strings.TrimSpace(intent.Metadata["user_id"])
	if userID == "" {
		return nil
	}
	return s.users.UpdatePlan(userID, models.PlanPaid)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
