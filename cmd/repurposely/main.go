package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/repurposely/repurposely/app/controllers"
	"github.com/repurposely/repurposely/app/repository"
	"github.com/repurposely/repurposely/internal/pkg/database"
	"github.com/repurposely/repurposely/internal/pkg/env"
	"github.com/repurposely/repurposely/internal/pkg/identity"
	"github.com/repurposely/repurposely/internal/pkg/payments"
	"github.com/repurposely/repurposely/internal/pkg/quota"
	"github.com/repurposely/repurposely/internal/pkg/repurpose"
	"github.com/repurposely/repurposely/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "8000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	repository.InitializeFactory(database.GetDB())
	factory := repository.GetGlobalFactory()

	// A missing model credential must keep the process from serving traffic,
	// not fail lazily per request.
	repurposeService, err := repurpose.NewService()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	quotaService := quota.NewService(factory.GetUserRepository(), factory.GetUsageLogRepository())
	paymentService := payments.NewService(
		payments.NewStripeClientFromEnv(),
		factory.GetUserRepository(),
		factory.GetPaymentRepository(),
		factory.GetWebhookEventRepository(),
		env.GetEnv("STRIPE_WEBHOOK_SECRET", ""),
	)

	controllers.InitializeAuthController(identity.NewClientFromEnv(), quotaService)
	controllers.InitializeRepurposeController(quotaService, repurposeService)
	controllers.InitializePaymentController(paymentService)

	app := fiber.New(fiber.Config{
		AppName: "Repurposely Backend",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// API docs
	if _, err := os.Stat("./docs/openapi.yaml"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/openapi.yaml",
			Path:     "docs",
		}))
	}

	router.NewHttpRouter().InstallRouter(app)

	return app
}
