package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repurposely/repurposely/app/models"
	"github.com/repurposely/repurposely/internal/pkg/payments"
)

type stubPaymentRepo struct {
	payments []models.Payment
}

func (r *stubPaymentRepo) Create(payment *models.Payment) error {
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *stubPaymentRepo) ListByUser(userID string) ([]models.Payment, error) {
	return r.payments, nil
}

type stubEventRepo struct {
	seen map[string]*models.WebhookEvent
	next uint
}

func (r *stubEventRepo) CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	if r.seen == nil {
		r.seen = map[string]*models.WebhookEvent{}
	}
	key := event.Provider + "/" + event.ProviderEventID
	if stored, ok := r.seen[key]; ok {
		return false, stored, nil
	}
	r.next++
	cp := *event
	cp.ID = r.next
	r.seen[key] = &cp
	return true, &cp, nil
}

func (r *stubEventRepo) MarkProcessed(id uint, processingError string) error {
	for _, e := range r.seen {
		if e.ID == id {
			now := time.Now()
			e.ProcessedAt = &now
			e.ProcessingError = processingError
		}
	}
	return nil
}

func newPaymentTestApp(users *stubUserRepo) *fiber.App {
	InitializePaymentController(payments.NewService(
		&payments.StripeClient{SecretKey: "sk_test", APIBaseURL: "http://127.0.0.1:0"},
		users,
		&stubPaymentRepo{},
		&stubEventRepo{},
		"whsec_test",
	))

	app := fiber.New()
	app.Post("/payments/create-checkout-session", HandleCreateCheckoutSession)
	app.Post("/payments/webhook", HandleWebhook)
	return app
}

func TestHandleCreateCheckoutSession_InvalidPlan(t *testing.T) {
	app := newPaymentTestApp(&stubUserRepo{users: map[string]*models.User{}})

	status, body := postJSON(t, app, "/payments/create-checkout-session", map[string]any{
		"user_id":   "u1",
		"plan_type": "bogus",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["detail"], "invalid plan type")
}

func TestHandleCreateCheckoutSession_MissingFields(t *testing.T) {
	app := newPaymentTestApp(&stubUserRepo{users: map[string]*models.User{}})

	status, body := postJSON(t, app, "/payments/create-checkout-session", map[string]any{
		"plan_type": "monthly",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "user_id and plan_type are required", body["detail"])
}

func TestHandleWebhook_MissingSignatureHeader(t *testing.T) {
	app := newPaymentTestApp(&stubUserRepo{users: map[string]*models.User{}})

	req := httptest.NewRequest("POST", "/payments/webhook", strings.NewReader(`{"id":"evt_1","type":"noop"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	users := &stubUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", SubscriptionPlan: models.PlanFree},
	}}
	app := newPaymentTestApp(users)

	req := httptest.NewRequest("POST", "/payments/webhook",
		strings.NewReader(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"metadata":{"user_id":"u1","plan_type":"yearly"}}}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("stripe-signature", "t=1,v1=deadbeef")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	// No subscription change happened.
	assert.Equal(t, models.PlanFree, users.users["u1"].SubscriptionPlan)
}

func TestHandleRoot(t *testing.T) {
	app := fiber.New()
	app.Get("/", HandleRoot)

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
