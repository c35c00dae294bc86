package repository

import (
	"github.com/repurposely/repurposely/app/models"
	"gorm.io/gorm"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their provider-assigned ID
func (r *userRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePlan sets the subscription plan on a user row. The update is
// idempotent; writing the current plan again is not an error.
func (r *userRepository) UpdatePlan(id string, plan string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("subscription_plan", plan).Error
}
