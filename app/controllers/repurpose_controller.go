package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/repurposely/repurposely/app/models"
	"github.com/repurposely/repurposely/internal/pkg/middleware"
	"github.com/repurposely/repurposely/internal/pkg/quota"
	"github.com/repurposely/repurposely/internal/pkg/repurpose"
)

var (
	repurposeQuota   *quota.Service
	repurposeService *repurpose.Service
)

// InitializeRepurposeController wires the repurpose route to its services.
func InitializeRepurposeController(quotaService *quota.Service, service *repurpose.Service) {
	repurposeQuota = quotaService
	repurposeService = service
}

type repurposeRequest struct {
	UserID    string   `json:"user_id"`
	Content   string   `json:"content"`
	Platforms []string `json:"platforms"`
	Tone      string   `json:"tone"`
}

// HandleRepurpose gates the request on the daily quota, rewrites the content
// per platform and logs one billable action.
func HandleRepurpose(c *fiber.Ctx) error {
	var req repurposeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorDetail(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		// Fall back to the bearer-token subject when the body omits user_id.
		userID = middleware.AuthenticatedUserID(c)
	}
	if userID == "" || strings.TrimSpace(req.Content) == "" {
		return errorDetail(c, fiber.StatusBadRequest, "user_id and content are required")
	}

	allowed, err := repurposeQuota.CheckQuota(c.UserContext(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	if !allowed {
		return errorDetail(c, fiber.StatusTooManyRequests, "Usage limit exceeded")
	}

	result, err := repurposeService.Repurpose(c.UserContext(), req.Content, req.Platforms, req.Tone)
	if err != nil {
		return mapServiceError(c, err)
	}

	if err := repurposeQuota.LogUsage(c.UserContext(), userID, models.UsageTypeRepurpose, 1); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
