package repository

import (
	"time"

	"github.com/repurposely/repurposely/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	UpdatePlan(id string, plan string) error
}

// UsageLogRepository defines the interface for usage-log database operations
type UsageLogRepository interface {
	Create(log *models.UsageLog) error
	SumCountSince(userID, usageType string, since time.Time) (int64, error)
}

// PaymentRepository defines the interface for payment record operations
type PaymentRepository interface {
	Create(payment *models.Payment) error
	ListByUser(userID string) ([]models.Payment, error)
}

// WebhookEventRepository defines the interface for webhook event dedup storage
type WebhookEventRepository interface {
	CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkProcessed(id uint, processingError string) error
}

// Repositories bundles all repository instances
type Repositories struct {
	User         UserRepository
	UsageLog     UsageLogRepository
	Payment      PaymentRepository
	WebhookEvent WebhookEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		UsageLog:     NewUsageLogRepository(db),
		Payment:      NewPaymentRepository(db),
		WebhookEvent: NewWebhookEventRepository(db),
	}
}
