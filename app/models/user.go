package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	PlanFree = "free"
	PlanPaid = "paid"
)

// User mirrors an identity-provider account. The primary key is the
// provider-assigned user id; no local id is minted.
type User struct {
	ID               string    `gorm:"type:varchar(64);primaryKey" json:"id" validate:"required"`
	Email            string    `gorm:"type:varchar(200);index" json:"email" validate:"required,email"`
	SubscriptionPlan string    `gorm:"type:varchar(20);not null;default:'free'" json:"subscription_plan" validate:"oneof=free paid"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// IsPaid reports whether the user is on the unlimited plan. Any plan value
// other than "paid" is treated as free.
func (u *User) IsPaid() bool {
	return u.SubscriptionPlan == PlanPaid
}

func NewUser(id, email string) (*User, error) {
	u := &User{
		ID:               id,
		Email:            email,
		SubscriptionPlan: PlanFree,
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	return u, nil
}
