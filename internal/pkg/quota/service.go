package quota

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/repurposely/repurposely/app/models"
	"github.com/repurposely/repurposely/app/repository"
	"gorm.io/gorm"
)

// FreeDailyLimit is the number of repurpose actions a free-plan user may run
// per calendar day.
const FreeDailyLimit = 2

// ErrConflict is returned when creating a user whose id already exists.
var ErrConflict = errors.New("user already exists")

// Service decides whether a request may proceed and owns subscription plan
// changes on the user row.
type Service struct {
	users repository.UserRepository
	usage repository.UsageLogRepository

	// now is swappable for day-boundary tests.
	now func() time.Time
}

// NewService creates a quota service from injected repositories.
func NewService(users repository.UserRepository, usage repository.UsageLogRepository) *Service {
	return &Service{
		users: users,
		usage: usage,
		now:   time.Now,
	}
}

// GetUser returns the user row, or nil when the id is unknown.
func (s *Service) GetUser(ctx context.Context, userID string) (*models.User, error) {
	_ = ctx
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user row. Returns ErrConflict when the
// provider-assigned id is already present.
func (s *Service) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil || strings.TrimSpace(user.ID) == "" {
		return errors.New("user id is required")
	}
	existing, err := s.GetUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrConflict
	}
	return s.users.Create(user)
}

// CheckQuota reports whether the user may run another repurpose action.
// Paid users are unlimited; free users get FreeDailyLimit actions per
// calendar day, counted from local midnight. Unknown users get nothing.
//
// Check and log are two store round trips, so concurrent requests can race
// past the cap; the store serializes the individual writes but not the pair.
func (s *Service) CheckQuota(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	if user.IsPaid() {
		return true, nil
	}

	total, err := s.usage.SumCountSince(userID, models.UsageTypeRepurpose, s.startOfToday())
	if err != nil {
		return false, err
	}
	return total < FreeDailyLimit, nil
}

// LogUsage appends one usage log row with the current timestamp.
func (s *Service) LogUsage(ctx context.Context, userID, usageType string, count int) error {
	_ = ctx
	return s.usage.Create(&models.UsageLog{
		UserID:    userID,
		Type:      usageType,
		Count:     count,
		CreatedAt: s.now(),
	})
}

// UpgradeSubscription unconditionally sets the plan on the user row.
func (s *Service) UpgradeSubscription(ctx context.Context, userID, plan string) error {
	_ = ctx
	return s.users.UpdatePlan(userID, plan)
}

func (s *Service) startOfToday() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
