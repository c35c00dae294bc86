package models

import "time"

const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// Payment records a completed charge reported by the payment processor.
// Amount is in minor currency units (paise for INR).
type Payment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Reference       string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"reference"`
	UserID          string    `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Amount          int64     `gorm:"not null" json:"amount"`
	Currency        string    `gorm:"type:varchar(8);not null" json:"currency"`
	Status          string    `gorm:"type:varchar(32);not null" json:"status"`
	StripePaymentID string    `gorm:"type:varchar(191);index" json:"stripe_payment_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}
