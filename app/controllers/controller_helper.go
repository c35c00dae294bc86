package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/repurposely/repurposely/internal/pkg/identity"
	"github.com/repurposely/repurposely/internal/pkg/payments"
	"github.com/repurposely/repurposely/internal/pkg/quota"
	"github.com/repurposely/repurposely/internal/pkg/repurpose"
)

// errorDetail writes the uniform error shape used by every route group.
func errorDetail(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

// mapServiceError is the single error boundary between services and HTTP.
// Known service failures surface their message; anything unexpected gets a
// generic detail so internals never leak to the client.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, quota.ErrConflict):
		return errorDetail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, identity.ErrAuthentication),
		errors.Is(err, identity.ErrRegistration),
		errors.Is(err, payments.ErrInvalidPlan),
		errors.Is(err, payments.ErrCheckoutCreation),
		errors.Is(err, payments.ErrSessionLookup),
		errors.Is(err, payments.ErrInvalidPayload),
		errors.Is(err, payments.ErrInvalidSignature),
		errors.Is(err, repurpose.ErrGeneration):
		return errorDetail(c, fiber.StatusBadRequest, err.Error())
	default:
		return errorDetail(c, fiber.StatusBadRequest, "request failed")
	}
}
