package controllers

import "github.com/gofiber/fiber/v2"

// HandleRoot is the liveness route.
func HandleRoot(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Welcome to Repurposely API",
	})
}
