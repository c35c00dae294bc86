package repository

import (
	"time"

	"github.com/repurposely/repurposely/app/models"
	"gorm.io/gorm"
)

// usageLogRepository implements the UsageLogRepository interface
type usageLogRepository struct {
	db *gorm.DB
}

// NewUsageLogRepository creates a new usage log repository instance
func NewUsageLogRepository(db *gorm.DB) UsageLogRepository {
	return &usageLogRepository{db: db}
}

// Create appends a usage log row
func (r *usageLogRepository) Create(log *models.UsageLog) error {
	return r.db.Create(log).Error
}

// SumCountSince sums the count column over a user's rows of the given type
// created at or after the given instant.
func (r *usageLogRepository) SumCountSince(userID, usageType string, since time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&models.UsageLog{}).
		Where("user_id = ? AND type = ? AND created_at >= ?", userID, usageType, since).
		Select("COALESCE(SUM(count), 0)").
		Scan(&total).Error
	return total, err
}
