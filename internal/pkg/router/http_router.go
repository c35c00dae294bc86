package router

import (
	"github.com/repurposely/repurposely/app/controllers"
	"github.com/repurposely/repurposely/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/", controllers.HandleRoot)

	auth := app.Group("/auth")
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/register", controllers.HandleRegister)
	auth.Post("/google-login", controllers.HandleGoogleLogin)

	repurpose := app.Group("/repurpose", middleware.BearerContextMiddleware())
	repurpose.Post("/repurpose", controllers.HandleRepurpose)

	payments := app.Group("/payments")
	payments.Post("/create-checkout-session", controllers.HandleCreateCheckoutSession)
	payments.Get("/session/:session_id", controllers.HandleGetSession)
	// Raw body route; signature verification happens in the service.
	payments.Post("/webhook", controllers.HandleWebhook)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
