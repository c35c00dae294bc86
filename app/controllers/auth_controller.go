package controllers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/repurposely/repurposely/app/models"
	"github.com/repurposely/repurposely/internal/pkg/env"
	"github.com/repurposely/repurposely/internal/pkg/identity"
	"github.com/repurposely/repurposely/internal/pkg/quota"
)

var (
	authIdentity *identity.Client
	authQuota    *quota.Service
)

// InitializeAuthController wires the auth routes to their services.
func InitializeAuthController(identityClient *identity.Client, quotaService *quota.Service) {
	authIdentity = identityClient
	authQuota = quotaService
}

type credentialsRequest struct {
	Email    string `json:"email" query:"email" validate:"required,email"`
	Password string `json:"password" query:"password" validate:"required"`
}

func parseCredentials(c *fiber.Ctx) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil && c.Query("email") == "" {
		return nil, err
	}
	if req.Email == "" {
		req.Email = c.Query("email")
		req.Password = c.Query("password")
	}
	if err := validator.New().Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// HandleLogin signs the user in against the identity provider and creates
// the local user row on first successful login.
func HandleLogin(c *fiber.Ctx) error {
	req, err := parseCredentials(c)
	if err != nil {
		return errorDetail(c, fiber.StatusBadRequest, "email and password are required")
	}

	session, err := authIdentity.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return mapServiceError(c, err)
	}

	user, err := authQuota.GetUser(c.UserContext(), session.UserID)
	if err != nil {
		return mapServiceError(c, err)
	}
	if user == nil {
		user, err = models.NewUser(session.UserID, req.Email)
		if err != nil {
			return mapServiceError(c, err)
		}
		if err := authQuota.CreateUser(c.UserContext(), user); err != nil {
			// A concurrent first login may have inserted the row already.
			if !errors.Is(err, quota.ErrConflict) {
				return mapServiceError(c, err)
			}
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token": session.AccessToken,
		"user_id":      session.UserID,
	})
}

// HandleRegister registers the user with the identity provider and inserts
// the local user row.
func HandleRegister(c *fiber.Ctx) error {
	req, err := parseCredentials(c)
	if err != nil {
		return errorDetail(c, fiber.StatusBadRequest, "email and password are required")
	}

	userID, err := authIdentity.SignUp(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return mapServiceError(c, err)
	}

	user, err := models.NewUser(userID, req.Email)
	if err != nil {
		return mapServiceError(c, err)
	}
	if err := authQuota.CreateUser(c.UserContext(), user); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User registered",
		"user_id": userID,
	})
}

type googleLoginRequest struct {
	Code string `json:"code" query:"code"`
}

// HandleGoogleLogin starts the provider-hosted OAuth flow. The callback is
// completed on the frontend; this route only hands out the redirect.
func HandleGoogleLogin(c *fiber.Ctx) error {
	var req googleLoginRequest
	_ = c.BodyParser(&req)

	redirectTo := env.GetEnv("OAUTH_REDIRECT_TO", "http://localhost:3000")
	authorizeURL, err := authIdentity.OAuthAuthorizeURL("google", redirectTo)
	if err != nil {
		log.Printf("google oauth redirect unavailable: %v", err)
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Redirect to Google OAuth",
		"redirect_url": authorizeURL,
	})
}
