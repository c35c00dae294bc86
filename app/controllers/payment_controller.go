package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/repurposely/repurposely/internal/pkg/payments"
)

var paymentService *payments.Service

// InitializePaymentController wires the payment routes to their service.
func InitializePaymentController(service *payments.Service) {
	paymentService = service
}

type checkoutSessionRequest struct {
	UserID     string `json:"user_id"`
	PlanType   string `json:"plan_type"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

// HandleCreateCheckoutSession creates a hosted checkout page for one of the
// fixed plan types.
func HandleCreateCheckoutSession(c *fiber.Ctx) error {
	var req checkoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorDetail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.PlanType) == "" {
		return errorDetail(c, fiber.StatusBadRequest, "user_id and plan_type are required")
	}
	if req.SuccessURL == "" {
		req.SuccessURL = "http://localhost:3000/dashboard?success=true"
	}
	if req.CancelURL == "" {
		req.CancelURL = "http://localhost:3000/billing"
	}

	session, err := paymentService.CreateCheckoutSession(c.UserContext(), req.UserID, req.PlanType, req.SuccessURL, req.CancelURL)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"checkout_url": session.URL,
		"session_id":   session.ID,
	})
}

// HandleGetSession returns the processor's view of one checkout session.
func HandleGetSession(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	session, err := paymentService.GetSessionDetails(c.UserContext(), sessionID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":             session.ID,
		"payment_status": session.PaymentStatus,
		"metadata":       session.Metadata,
	})
}

// HandleWebhook verifies and applies an asynchronous processor notification.
// The processor retries on non-2xx, so a verified and recorded event must be
// acknowledged promptly.
func HandleWebhook(c *fiber.Ctx) error {
	signature := strings.TrimSpace(c.Get("stripe-signature"))
	if signature == "" {
		return errorDetail(c, fiber.StatusBadRequest, "Missing stripe-signature header")
	}

	rawBody := append([]byte(nil), c.BodyRaw()...)
	if _, err := paymentService.HandleWebhook(c.UserContext(), rawBody, signature); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success"})
}
